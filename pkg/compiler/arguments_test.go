package compiler

import (
	"reflect"
	"testing"
)

func TestArguments_TokensInsertionOrder(t *testing.T) {
	args := newArguments()
	args.set("-output-directory", "/tmp/job")
	args.set("-interaction", "nonstopmode")
	args.set("-halt-on-error", "")

	want := []string{
		"-output-directory=/tmp/job",
		"-interaction=nonstopmode",
		"-halt-on-error",
	}
	if got := args.tokens(); !reflect.DeepEqual(got, want) {
		t.Errorf("tokens() = %v, want %v", got, want)
	}
}

func TestArguments_LastWriteWinsKeepsPosition(t *testing.T) {
	args := newArguments()
	args.set("-interaction", "batchmode")
	args.set("-jobname", "report")
	args.set("-interaction", "nonstopmode")

	want := []string{"-interaction=nonstopmode", "-jobname=report"}
	if got := args.tokens(); !reflect.DeepEqual(got, want) {
		t.Errorf("tokens() = %v, want %v", got, want)
	}
}

func TestArguments_Remove(t *testing.T) {
	args := newArguments()
	args.set("-a", "1")
	args.set("-b", "2")
	args.set("-c", "3")

	args.remove("-b")
	args.remove("-missing") // no-op

	want := []string{"-a=1", "-c=3"}
	if got := args.tokens(); !reflect.DeepEqual(got, want) {
		t.Errorf("tokens() = %v, want %v", got, want)
	}

	if _, ok := args.get("-b"); ok {
		t.Error("removed argument still resolvable")
	}
}

func TestArguments_GenerationAdvancesOnBump(t *testing.T) {
	args := newArguments()
	start := args.generation

	args.set("-quiet", "")
	if args.generation != start {
		t.Error("set must not advance the generation by itself")
	}

	args.bump()
	args.bump()
	if args.generation != start+2 {
		t.Errorf("generation = %d, want %d", args.generation, start+2)
	}
}
