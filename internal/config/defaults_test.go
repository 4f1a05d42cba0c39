package config

import "testing"

func TestDefaultTraining(t *testing.T) {
	tc := DefaultTraining()
	if tc.LearningRate != 3e-4 || tc.PerDeviceTrainBatchSize != 64 || !tc.FP16 || tc.BF16 {
		t.Fatalf("unexpected defaults: %+v", tc)
	}
	if tc.CheckpointDir != "./reinforce_output" || tc.LRSchedulerType != "cosine" || tc.KLBeta != 0.1 {
		t.Fatalf("unexpected defaults: %+v", tc)
	}
	if tc.ProjectKwargs == nil || len(tc.ProjectKwargs) != 0 {
		t.Fatalf("expected empty non-nil project kwargs, got %v", tc.ProjectKwargs)
	}
}

func TestDefaultReturnsFreshValues(t *testing.T) {
	a := Default()
	a.Training.ProjectKwargs["x"] = 1
	a.LoRA.TargetModules[0] = "changed"
	b := Default()
	if len(b.Training.ProjectKwargs) != 0 || b.LoRA.TargetModules[0] != "q_proj" {
		t.Fatalf("defaults share state between calls")
	}
}

func TestDefaultSections(t *testing.T) {
	s := Default()
	if s.Model.ModelName != "Qwen/Qwen3-4B" || !s.Model.TrustRemoteCode {
		t.Fatalf("unexpected model: %+v", s.Model)
	}
	if s.Dataset.MaxSamples != nil || s.Dataset.MaxLength != 2048 || s.Dataset.ReasoningTask != "graph_color" {
		t.Fatalf("unexpected dataset: %+v", s.Dataset)
	}
	if s.Inference.MaxThinkingTokens != 64 || s.Inference.Temperature != 0.7 {
		t.Fatalf("unexpected inference: %+v", s.Inference)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestRewardMode(t *testing.T) {
	inf := DefaultInference()
	if got := RewardMode(inf); got != RewardThinkingOnly {
		t.Fatalf("expected %s, got %s", RewardThinkingOnly, got)
	}
	inf.EnableThinking = false
	if got := RewardMode(inf); got != RewardAllTokens {
		t.Fatalf("expected %s, got %s", RewardAllTokens, got)
	}
}
