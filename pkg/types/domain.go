package types

// TrainingConfig holds the REINFORCE hyperparameters consumed by the training loop.
// Tier selection overrides the batch-size and precision fields only.
type TrainingConfig struct {
	LearningRate              float64        `json:"learning_rate" yaml:"learning_rate" toml:"learning_rate"`
	BatchSize                 int            `json:"batch_size" yaml:"batch_size" toml:"batch_size"`
	MiniBatchSize             int            `json:"mini_batch_size" yaml:"mini_batch_size" toml:"mini_batch_size"`
	GradientAccumulationSteps int            `json:"gradient_accumulation_steps" yaml:"gradient_accumulation_steps" toml:"gradient_accumulation_steps"`
	Seed                      int64          `json:"seed" yaml:"seed" toml:"seed"`
	MaxGradNorm               float64        `json:"max_grad_norm" yaml:"max_grad_norm" toml:"max_grad_norm"`
	ExpName                   string         `json:"exp_name" yaml:"exp_name" toml:"exp_name"`
	LogWith                   string         `json:"log_with" yaml:"log_with" toml:"log_with"`
	ProjectKwargs             map[string]any `json:"project_kwargs" yaml:"project_kwargs" toml:"project_kwargs"`
	TrackerProjectName        string         `json:"tracker_project_name" yaml:"tracker_project_name" toml:"tracker_project_name"`
	Steps                     int            `json:"steps" yaml:"steps" toml:"steps"`
	LoggingSteps              int            `json:"logging_steps" yaml:"logging_steps" toml:"logging_steps"`
	SaveSteps                 int            `json:"save_steps" yaml:"save_steps" toml:"save_steps"`
	WarmupSteps               int            `json:"warmup_steps" yaml:"warmup_steps" toml:"warmup_steps"`
	RolloutSaveSteps          int            `json:"rollout_save_steps" yaml:"rollout_save_steps" toml:"rollout_save_steps"`
	WeightDecay               float64        `json:"weight_decay" yaml:"weight_decay" toml:"weight_decay"`
	LRSchedulerType           string         `json:"lr_scheduler_type" yaml:"lr_scheduler_type" toml:"lr_scheduler_type"`
	NumTrainEpochs            int            `json:"num_train_epochs" yaml:"num_train_epochs" toml:"num_train_epochs"`
	PerDeviceTrainBatchSize   int            `json:"per_device_train_batch_size" yaml:"per_device_train_batch_size" toml:"per_device_train_batch_size"`
	GradientCheckpointing     bool           `json:"gradient_checkpointing" yaml:"gradient_checkpointing" toml:"gradient_checkpointing"`
	FP16                      bool           `json:"fp16" yaml:"fp16" toml:"fp16"`
	BF16                      bool           `json:"bf16" yaml:"bf16" toml:"bf16"`
	ResumeFromCheckpoint      bool           `json:"resume_from_checkpoint" yaml:"resume_from_checkpoint" toml:"resume_from_checkpoint"`
	CheckpointDir             string         `json:"checkpoint_dir" yaml:"checkpoint_dir" toml:"checkpoint_dir"`
	RewardFnName              string         `json:"reward_fn_name" yaml:"reward_fn_name" toml:"reward_fn_name"`

	// KL penalty against the reference policy.
	UseKLPenalty bool    `json:"use_kl_penalty" yaml:"use_kl_penalty" toml:"use_kl_penalty"`
	KLBeta       float64 `json:"kl_beta" yaml:"kl_beta" toml:"kl_beta"`
	UseAdvantage bool    `json:"use_advantage" yaml:"use_advantage" toml:"use_advantage"`
	// Zero gradients for tokens inside <think></think> tags.
	ZeroThinkingGradients bool `json:"zero_thinking_gradients" yaml:"zero_thinking_gradients" toml:"zero_thinking_gradients"`
}

// ModelConfig describes how the base model is loaded.
type ModelConfig struct {
	// example: Qwen/Qwen3-4B
	ModelName       string `json:"model_name" yaml:"model_name" toml:"model_name"`
	DeviceMap       string `json:"device_map" yaml:"device_map" toml:"device_map"`
	TorchDType      string `json:"torch_dtype" yaml:"torch_dtype" toml:"torch_dtype"`
	TrustRemoteCode bool   `json:"trust_remote_code" yaml:"trust_remote_code" toml:"trust_remote_code"`
}

// LoRAConfig holds the adapter settings applied on top of the base model.
type LoRAConfig struct {
	R             int      `json:"r" yaml:"r" toml:"r"`
	LoRAAlpha     int      `json:"lora_alpha" yaml:"lora_alpha" toml:"lora_alpha"`
	TargetModules []string `json:"target_modules" yaml:"target_modules" toml:"target_modules"`
	LoRADropout   float64  `json:"lora_dropout" yaml:"lora_dropout" toml:"lora_dropout"`
	Bias          string   `json:"bias" yaml:"bias" toml:"bias"`
	TaskType      string   `json:"task_type" yaml:"task_type" toml:"task_type"`
}

// DatasetConfig selects and shapes the training prompts.
type DatasetConfig struct {
	DatasetPath string `json:"dataset_path" yaml:"dataset_path" toml:"dataset_path"`
	// Nil means no cap.
	MaxSamples *int `json:"max_samples" yaml:"max_samples" toml:"max_samples,omitempty"`
	MaxLength  int  `json:"max_length" yaml:"max_length" toml:"max_length"`
	Truncation bool `json:"truncation" yaml:"truncation" toml:"truncation"`
	Padding    bool `json:"padding" yaml:"padding" toml:"padding"`
	// One of "reasoning_gym", "mbpp" or a path to a JSON file.
	DatasetName  string `json:"dataset_name" yaml:"dataset_name" toml:"dataset_name"`
	DatasetSplit string `json:"dataset_split" yaml:"dataset_split" toml:"dataset_split"`

	ReasoningTask string `json:"reasoning_task" yaml:"reasoning_task" toml:"reasoning_task"`
	ReasoningSize int    `json:"reasoning_size" yaml:"reasoning_size" toml:"reasoning_size"`
	ReasoningSeed int64  `json:"reasoning_seed" yaml:"reasoning_seed" toml:"reasoning_seed"`
	VerifySamples bool   `json:"verify_samples" yaml:"verify_samples" toml:"verify_samples"`
}

// InferenceConfig holds the rollout sampling settings.
type InferenceConfig struct {
	MaxNewTokens         int     `json:"max_new_tokens" yaml:"max_new_tokens" toml:"max_new_tokens"`
	MinNewTokens         int     `json:"min_new_tokens" yaml:"min_new_tokens" toml:"min_new_tokens"`
	Temperature          float64 `json:"temperature" yaml:"temperature" toml:"temperature"`
	TopP                 float64 `json:"top_p" yaml:"top_p" toml:"top_p"`
	TopK                 int     `json:"top_k" yaml:"top_k" toml:"top_k"`
	DoSample             bool    `json:"do_sample" yaml:"do_sample" toml:"do_sample"`
	EnableThinking       bool    `json:"enable_thinking" yaml:"enable_thinking" toml:"enable_thinking"`
	MaxThinkingTokens    int     `json:"max_thinking_tokens" yaml:"max_thinking_tokens" toml:"max_thinking_tokens"`
	MinThinkingTokens    int     `json:"min_thinking_tokens" yaml:"min_thinking_tokens" toml:"min_thinking_tokens"`
	UseThinkingProcessor bool    `json:"use_thinking_processor" yaml:"use_thinking_processor" toml:"use_thinking_processor"`
}

// Checkpoint is a saved training state directory named checkpoint-<step>.
type Checkpoint struct {
	Step uint64 `json:"step"`
	Path string `json:"path"`
}
