package v1

// Value is a display-formatted binary value together with its full form for copying.
type Value struct {
	Display string `json:"display"`
	Full    string `json:"full"`
}

type ProgramMetadata struct {
	Name        string  `json:"name"`
	Version     string  `json:"version"`
	Description *string `json:"description,omitempty"`
	License     *string `json:"license,omitempty"`
	Repository  *string `json:"repository,omitempty"`
	DockerImage *string `json:"docker_image,omitempty"`
}

type Program struct {
	Hash         Value            `json:"hash"`
	Deployer     string           `json:"deployer"`
	RefCounter   string           `json:"ref_counter"`
	Size         string           `json:"size"`
	SizeBytes    int              `json:"size_bytes"`
	Configurable bool             `json:"configurable"`
	Metadata     *ProgramMetadata `json:"metadata"`
}

type RegisteredAccount struct {
	AccountID                  string  `json:"account_id"`
	KeyVisibility              string  `json:"key_visibility"`
	VerifyingKey               Value   `json:"verifying_key"`
	EthereumAddress            string  `json:"ethereum_address,omitempty"`
	ProgramPointers            []Value `json:"program_pointers"`
	ProgramModificationAccount string  `json:"program_modification_account"`
}

type Validator struct {
	StashAccount    string `json:"stash_account"`
	TSSAccount      string `json:"tss_account"`
	X25519PublicKey Value  `json:"x25519_public_key"`
	Endpoint        string `json:"endpoint"`
}

type Endpoint struct {
	Endpoint    string `json:"endpoint"`
	NetworkName string `json:"network_name"`
}

// KindStatus carries either the items of one entity kind or the reason they are unavailable.
type KindStatus[T any] struct {
	Items []T    `json:"items"`
	Error string `json:"error,omitempty"`
}

type Status struct {
	Endpoint   Endpoint                      `json:"endpoint"`
	Programs   KindStatus[Program]           `json:"programs"`
	Accounts   KindStatus[RegisteredAccount] `json:"accounts"`
	Validators KindStatus[Validator]         `json:"validators"`
}
