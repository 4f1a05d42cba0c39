// Package config builds the REINFORCE run configuration: defaults, file
// overlays and GPU tier selection.
package config

import (
	"reinforce/pkg/types"
)

// Settings bundles every configuration section consumed by the training,
// dataset and model-loading collaborators.
type Settings struct {
	Training  types.TrainingConfig  `json:"training" yaml:"training" toml:"training"`
	Model     types.ModelConfig     `json:"model" yaml:"model" toml:"model"`
	LoRA      types.LoRAConfig      `json:"lora" yaml:"lora" toml:"lora"`
	Dataset   types.DatasetConfig   `json:"dataset" yaml:"dataset" toml:"dataset"`
	Inference types.InferenceConfig `json:"inference" yaml:"inference" toml:"inference"`
}

// Default returns a fully populated Settings value. Each call returns fresh
// maps and slices, so callers may mutate the result freely.
func Default() Settings {
	return Settings{
		Training:  DefaultTraining(),
		Model:     DefaultModel(),
		LoRA:      DefaultLoRA(),
		Dataset:   DefaultDataset(),
		Inference: DefaultInference(),
	}
}

// DefaultTraining returns the baseline REINFORCE hyperparameters.
func DefaultTraining() types.TrainingConfig {
	return types.TrainingConfig{
		LearningRate:              3e-4,
		BatchSize:                 1,
		MiniBatchSize:             1,
		GradientAccumulationSteps: 1,
		Seed:                      42,
		MaxGradNorm:               1.0,
		ExpName:                   "spillover",
		LogWith:                   "wandb",
		ProjectKwargs:             map[string]any{},
		TrackerProjectName:        "trl",
		Steps:                     100,
		LoggingSteps:              1,
		SaveSteps:                 5,
		WarmupSteps:               5,
		RolloutSaveSteps:          5,
		WeightDecay:               0.01,
		LRSchedulerType:           "cosine",
		NumTrainEpochs:            1,
		PerDeviceTrainBatchSize:   64,
		GradientCheckpointing:     true,
		FP16:                      true,
		BF16:                      false,
		ResumeFromCheckpoint:      false,
		CheckpointDir:             "./reinforce_output",
		RewardFnName:              "reasoning_gym",
		UseKLPenalty:              true,
		KLBeta:                    0.1,
		UseAdvantage:              true,
		ZeroThinkingGradients:     true,
	}
}

func DefaultModel() types.ModelConfig {
	return types.ModelConfig{
		ModelName:       "Qwen/Qwen3-4B",
		DeviceMap:       "auto",
		TorchDType:      "bfloat16",
		TrustRemoteCode: true,
	}
}

func DefaultLoRA() types.LoRAConfig {
	return types.LoRAConfig{
		R:         32,
		LoRAAlpha: 64,
		TargetModules: []string{
			"q_proj", "k_proj", "v_proj", "o_proj",
			"gate_proj", "up_proj", "down_proj",
		},
		LoRADropout: 0.05,
		Bias:        "none",
		TaskType:    "CAUSAL_LM",
	}
}

func DefaultDataset() types.DatasetConfig {
	return types.DatasetConfig{
		DatasetPath:   "/root/obfuscation/datasets/math_5000_number_words.jsonl",
		MaxSamples:    nil,
		MaxLength:     2048,
		Truncation:    true,
		Padding:       false,
		DatasetName:   "reasoning_gym",
		DatasetSplit:  "sanitized",
		ReasoningTask: "graph_color",
		ReasoningSize: 1000,
		ReasoningSeed: 42,
		VerifySamples: false,
	}
}

func DefaultInference() types.InferenceConfig {
	return types.InferenceConfig{
		MaxNewTokens:         128,
		MinNewTokens:         0,
		Temperature:          0.7,
		TopP:                 1.0,
		TopK:                 0,
		DoSample:             true,
		EnableThinking:       true,
		MaxThinkingTokens:    64,
		MinThinkingTokens:    0,
		UseThinkingProcessor: true,
	}
}

// Reward calculation modes.
const (
	RewardThinkingOnly = "thinking_only"
	RewardAllTokens    = "all_tokens"
)

// RewardMode picks which tokens the reward covers.
func RewardMode(inf types.InferenceConfig) string {
	if inf.EnableThinking {
		return RewardThinkingOnly
	}
	return RewardAllTokens
}
