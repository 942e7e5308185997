package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-raycaster/pkg/loaders"
)

const testSceneFile = `camera, width: 1, height: 1
sphere, color: [1, 0, 0], position: [0, 0, -5], radius: 1
light, color: [1, 1, 1], radial-a0: 1, position: [0, 0, 0]
`

func writeTestScene(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}
	return path
}

func TestRun_RendersPPM(t *testing.T) {
	input := writeTestScene(t, testSceneFile)
	output := filepath.Join(t.TempDir(), "out.ppm")

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"10", "10", input, output}, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3+100 {
		t.Fatalf("Expected 103 PPM lines, got %d", len(lines))
	}
	if lines[0] != "P3" || lines[1] != "10 10" || lines[2] != "255" {
		t.Errorf("Unexpected PPM header %q", lines[:3])
	}
	// First pixel is the top-left corner, which misses the sphere
	if lines[3] != "0 0 0" {
		t.Errorf("Expected black corner pixel, got %q", lines[3])
	}
	// Pixel (4,4) looks at the sphere
	if center := lines[3+4*10+4]; !strings.HasSuffix(center, " 0 0") || strings.HasPrefix(center, "0 ") {
		t.Errorf("Expected red center pixel, got %q", center)
	}

	if stdout.Len() != 0 {
		t.Errorf("Expected no stdout without -v, got %q", stdout.String())
	}
}

func TestRun_VerbosePNG(t *testing.T) {
	input := writeTestScene(t, testSceneFile)
	output := filepath.Join(t.TempDir(), "out.png")

	var stdout, stderr bytes.Buffer
	args := []string{"-v", "-specular", "-workers", "2", "-tile", "3", "8", "6", input, output}
	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	raster, err := loaders.LoadImage(output)
	if err != nil {
		t.Fatalf("Output is not a readable PNG: %v", err)
	}
	if raster.Width != 8 || raster.Height != 6 {
		t.Errorf("Expected 8x6 output, got %dx%d", raster.Width, raster.Height)
	}

	for _, want := range []string{"1) CAMERA:", "2) SPHERE:", "3) LIGHT:", "Render saved as"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("Expected verbose output to contain %q", want)
		}
	}
}

func TestRun_BuiltinScene(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.ppm")
	if err := run(context.Background(), []string{"16", "9", "default", output}, &bytes.Buffer{}, &bytes.Buffer{}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("Expected output file: %v", err)
	}
}

func TestRun_Errors(t *testing.T) {
	validInput := writeTestScene(t, testSceneFile)
	invalidInput := writeTestScene(t, "camera, width: 1, height: 1\nteapot, size: 3\n")
	output := filepath.Join(t.TempDir(), "out.ppm")
	unwritable := filepath.Join(t.TempDir(), "missing-dir", "out.ppm")

	tests := []struct {
		name      string
		args      []string
		wantUsage bool
		wantInput bool
		wantOut   bool
	}{
		{"too few arguments", []string{"10", "10", validInput}, true, false, false},
		{"non-numeric width", []string{"ten", "10", validInput, output}, true, false, false},
		{"zero height", []string{"10", "0", validInput, output}, true, false, false},
		{"unknown flag", []string{"-bogus", "10", "10", validInput, output}, true, false, false},
		{"negative workers", []string{"-workers", "-1", "10", "10", validInput, output}, true, false, false},
		{"missing input", []string{"10", "10", filepath.Join(t.TempDir(), "nope.txt"), output}, false, true, false},
		{"invalid input", []string{"10", "10", invalidInput, output}, false, true, false},
		{"object limit", []string{"-max-objects", "2", "10", "10", validInput, output}, false, true, false},
		{"unwritable output", []string{"10", "10", validInput, unwritable}, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(context.Background(), tt.args, &bytes.Buffer{}, &bytes.Buffer{})
			if err == nil {
				t.Fatal("Expected error, got nil")
			}

			var usageErr *UsageError
			var inputErr *InputError
			var outputErr *OutputError
			if got := errors.As(err, &usageErr); got != tt.wantUsage {
				t.Errorf("UsageError = %t, want %t (err: %v)", got, tt.wantUsage, err)
			}
			if got := errors.As(err, &inputErr); got != tt.wantInput {
				t.Errorf("InputError = %t, want %t (err: %v)", got, tt.wantInput, err)
			}
			if got := errors.As(err, &outputErr); got != tt.wantOut {
				t.Errorf("OutputError = %t, want %t (err: %v)", got, tt.wantOut, err)
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	var stderr bytes.Buffer
	err := run(context.Background(), []string{"-h"}, &bytes.Buffer{}, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("Expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(stderr.String(), "two-lights") {
		t.Error("Expected help to list built-in scenes")
	}
}

func TestCreateScene(t *testing.T) {
	validInput := writeTestScene(t, testSceneFile)

	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{"default scene", "default", false},
		{"shadow scene", "shadow", false},
		{"two-lights scene", "two-lights", false},
		{"scene file", validInput, false},
		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.input, loaders.DefaultSceneFileConfig())
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene '%s', but got none", tt.input)
				}
				if s != nil {
					t.Errorf("Expected nil scene for '%s'", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for scene '%s': %v", tt.input, err)
			}
			if s.GetCamera() == nil {
				t.Errorf("Expected camera in scene '%s'", tt.input)
			}
		})
	}
}
