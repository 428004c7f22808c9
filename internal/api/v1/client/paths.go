package client

// Agent API endpoints
const (
	RootPath              = "/"
	JobsPath              = "/jobs"
	AgentStatusPath       = "/agent/status"
	AgentStartPath        = "/agent/start"
	AgentStopPath         = "/agent/stop"
	CredentialsPath       = "/api/linkedin/credentials"
	CredentialsStatusPath = "/api/linkedin/credentials/status"
)
