package main

import (
	"slices"
	"testing"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("WS_STR", "abc")
	t.Setenv("WS_INT", "42")
	t.Setenv("WS_BAD_INT", "forty")
	t.Setenv("WS_BOOL", "true")

	if got := getEnv("WS_STR", "x"); got != "abc" {
		t.Errorf("getEnv = %q", got)
	}
	if got := getEnv("WS_UNSET", "x"); got != "x" {
		t.Errorf("getEnv default = %q", got)
	}
	if got := envInt("WS_INT", 1); got != 42 {
		t.Errorf("envInt = %d", got)
	}
	if got := envInt("WS_BAD_INT", 7); got != 7 {
		t.Errorf("envInt malformed = %d", got)
	}
	if !envBool("WS_BOOL", false) || envBool("WS_UNSET", false) {
		t.Error("envBool")
	}
}

func TestSkippedWords(t *testing.T) {
	got := skippedWords([]string{"cat", "Dog", "elephant", "cat", " "}, []string{"CAT", "DOG"})
	if !slices.Equal(got, []string{"ELEPHANT"}) {
		t.Fatalf("skipped = %v", got)
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"serve", "generate", "level", "scores", "catalog"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %s not registered: %v", name, err)
		}
	}
	if f := rootCmd.PersistentFlags().Lookup("db"); f == nil {
		t.Error("--db flag missing")
	}
}
