package types

// Credentials are the LinkedIn login the agent crawls with
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CredentialState tells whether the agent has credentials stored
type CredentialState struct {
	Set bool `json:"set"`
}

// Ack is the agent's acknowledgement body for commands
type Ack struct {
	Message string `json:"message"`
}
