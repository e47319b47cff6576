package stripe

// Config holds the Stripe client settings.
type Config struct {
	APIURL    string
	SecretKey string

	// Sandbox makes CreateCardToken return the fixed test token instead of
	// calling out.
	Sandbox bool
}

// SandboxCardToken is the placeholder token the test environment accepts.
const SandboxCardToken = "tok_visa_sandbox"
