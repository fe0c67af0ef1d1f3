package report

type (
	// Model is the YAML report written after an approval run.
	Model struct {
		Network      string        `yaml:"network"`
		Diamond      string        `yaml:"diamond"`
		Sender       string        `yaml:"sender,omitempty"`
		DryRun       bool          `yaml:"dry-run"`
		Contracts    Section       `yaml:"contracts"`
		Selectors    Section       `yaml:"selectors"`
		Transactions []Transaction `yaml:"transactions,omitempty"`
	}

	// Section summarises one whitelist dimension (contracts or selectors).
	Section struct {
		Desired         int      `yaml:"desired"`
		AlreadyApproved int      `yaml:"already-approved"`
		Submitted       []string `yaml:"submitted,omitempty"`
	}

	Transaction struct {
		Method string `yaml:"method"`
		Hash   string `yaml:"hash"`
		Status uint64 `yaml:"status"`
	}
)
