package types

// SettingsResponse is returned by GET /config.
type SettingsResponse struct {
	Training  TrainingConfig  `json:"training" yaml:"training" toml:"training"`
	Model     ModelConfig     `json:"model" yaml:"model" toml:"model"`
	LoRA      LoRAConfig      `json:"lora" yaml:"lora" toml:"lora"`
	Dataset   DatasetConfig   `json:"dataset" yaml:"dataset" toml:"dataset"`
	Inference InferenceConfig `json:"inference" yaml:"inference" toml:"inference"`
	// Either thinking_only or all_tokens.
	// example: thinking_only
	RewardMode string `json:"reward_mode" yaml:"reward_mode" toml:"reward_mode"`
	// Tier applied to the training section, if any.
	// example: a100
	Tier string `json:"tier,omitempty" yaml:"tier,omitempty" toml:"tier,omitempty"`
}

// CheckpointResponse is returned by GET /checkpoints/latest.
type CheckpointResponse struct {
	Checkpoint Checkpoint `json:"checkpoint"`
}

// CheckpointsResponse wraps the list returned by GET /checkpoints.
type CheckpointsResponse struct {
	// Root directory that was scanned.
	// example: ./reinforce_output
	Dir         string       `json:"dir"`
	Checkpoints []Checkpoint `json:"checkpoints"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: no checkpoint found
	Error string `json:"error"`
	// HTTP status code.
	// example: 404
	Code int `json:"code"`
}
