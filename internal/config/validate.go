package config

import "strings"

// Validate rejects values the training loop cannot run with.
func (s Settings) Validate() error {
	t := s.Training
	positive := []struct {
		field string
		v     int
	}{
		{"training.batch_size", t.BatchSize},
		{"training.mini_batch_size", t.MiniBatchSize},
		{"training.gradient_accumulation_steps", t.GradientAccumulationSteps},
		{"training.per_device_train_batch_size", t.PerDeviceTrainBatchSize},
		{"training.steps", t.Steps},
		{"training.logging_steps", t.LoggingSteps},
		{"training.save_steps", t.SaveSteps},
		{"training.num_train_epochs", t.NumTrainEpochs},
		{"lora.r", s.LoRA.R},
		{"dataset.max_length", s.Dataset.MaxLength},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return invalidConfigError{field: p.field, msg: "must be > 0"}
		}
	}
	if t.LearningRate <= 0 {
		return invalidConfigError{field: "training.learning_rate", msg: "must be > 0"}
	}
	if t.WarmupSteps < 0 {
		return invalidConfigError{field: "training.warmup_steps", msg: "must be >= 0"}
	}
	if t.KLBeta < 0 {
		return invalidConfigError{field: "training.kl_beta", msg: "must be >= 0"}
	}
	if t.WeightDecay < 0 {
		return invalidConfigError{field: "training.weight_decay", msg: "must be >= 0"}
	}
	if t.FP16 && t.BF16 {
		return invalidConfigError{field: "training.fp16", msg: "fp16 and bf16 are mutually exclusive"}
	}
	if strings.TrimSpace(t.CheckpointDir) == "" {
		return invalidConfigError{field: "training.checkpoint_dir", msg: "must not be empty"}
	}
	if s.Dataset.MaxSamples != nil && *s.Dataset.MaxSamples <= 0 {
		return invalidConfigError{field: "dataset.max_samples", msg: "must be > 0 when set"}
	}
	if d := s.LoRA.LoRADropout; d < 0 || d >= 1 {
		return invalidConfigError{field: "lora.lora_dropout", msg: "must be in [0, 1)"}
	}
	if len(s.LoRA.TargetModules) == 0 {
		return invalidConfigError{field: "lora.target_modules", msg: "must not be empty"}
	}
	inf := s.Inference
	if inf.MaxNewTokens <= 0 {
		return invalidConfigError{field: "inference.max_new_tokens", msg: "must be > 0"}
	}
	if inf.MinNewTokens < 0 || inf.MinNewTokens > inf.MaxNewTokens {
		return invalidConfigError{field: "inference.min_new_tokens", msg: "must be in [0, max_new_tokens]"}
	}
	if inf.TopP <= 0 || inf.TopP > 1 {
		return invalidConfigError{field: "inference.top_p", msg: "must be in (0, 1]"}
	}
	if inf.Temperature < 0 {
		return invalidConfigError{field: "inference.temperature", msg: "must be >= 0"}
	}
	if inf.MinThinkingTokens < 0 || inf.MinThinkingTokens > inf.MaxThinkingTokens {
		return invalidConfigError{field: "inference.min_thinking_tokens", msg: "must be in [0, max_thinking_tokens]"}
	}
	return nil
}
