package main

import (
	"bytes"
	"strings"
	"testing"
)

const sampleModelDir = "../../models"

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "healthctl" {
			t.Errorf("expected use 'healthctl', got %q", cmd.Use)
		}
	})

	t.Run("has model-dir flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("model-dir")
		if flag == nil {
			t.Fatal("expected model-dir flag")
		}
		if flag.DefValue != "./models" {
			t.Errorf("expected default './models', got %q", flag.DefValue)
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		names := map[string]bool{}
		for _, sub := range cmd.Commands() {
			names[sub.Name()] = true
		}
		for _, want := range []string{"predict", "models", "notes"} {
			if !names[want] {
				t.Errorf("expected %s subcommand", want)
			}
		}
	})
}

func TestPredictBMICommand(t *testing.T) {
	t.Parallel()

	out, err := runCmd(t, "predict", "bmi", "--model-dir", sampleModelDir,
		"--gender", "female", "--height", "165", "--weight", "60")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "BMI Category: Normal Weight" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestPredictBMICommandRejectsInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "gender", args: []string{"--gender", "x"}, want: "unknown gender"},
		{name: "height", args: []string{"--height", "99"}, want: "height must be between 100 and 250"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			args := append([]string{"predict", "bmi", "--model-dir", sampleModelDir}, tt.args...)
			_, err := runCmd(t, args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestPredictBodyFatCommandDefaults(t *testing.T) {
	t.Parallel()

	out, err := runCmd(t, "predict", "bodyfat", "--model-dir", sampleModelDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Predicted Body Fat Percentage: 17.94%") {
		t.Errorf("unexpected output %q", out)
	}
	if !strings.Contains(out, "Fitness: Fitness range") {
		t.Errorf("expected fitness band, got %q", out)
	}
}

func TestPredictWithoutModels(t *testing.T) {
	t.Parallel()

	_, err := runCmd(t, "predict", "bodyfat", "--model-dir", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "model unavailable") {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if !strings.Contains(err.Error(), "bodyfat_scaler.json") {
		t.Errorf("expected load failure detail, got %v", err)
	}
}

func TestModelsCommand(t *testing.T) {
	t.Parallel()

	out, err := runCmd(t, "models", "--model-dir", sampleModelDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(out, "loaded") != 3 {
		t.Errorf("expected 3 loaded artifacts, got %q", out)
	}

	out, err = runCmd(t, "models", "--model-dir", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "3 model artifact(s) failed") {
		t.Fatalf("expected failure count, got %v", err)
	}
	if strings.Count(out, "missing") != 3 {
		t.Errorf("expected 3 missing artifacts, got %q", out)
	}
}

func TestNotesCommand(t *testing.T) {
	t.Parallel()

	out, err := runCmd(t, "notes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Obese: ≥ 30") {
		t.Errorf("unexpected output %q", out)
	}
}
