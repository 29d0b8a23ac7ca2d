package registry

import (
	"testing"

	"github.com/vovakirdan/flappy-gym/internal/games/flappy"
)

type constPolicy struct {
	action flappy.Action
}

func (p constPolicy) Name() string        { return "const" }
func (p constPolicy) Description() string { return "always the same action" }
func (p constPolicy) Act(flappy.Observation, flappy.State) flappy.Action {
	return p.action
}

func TestRegisterAndCreate(t *testing.T) {
	Register("test-const", func(flappy.Rules, int64) Policy {
		return constPolicy{action: flappy.ActionFlap}
	})

	if !Exists("test-const") {
		t.Fatal("registered policy not found")
	}

	p, err := Create("test-const", flappy.Rules{}, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Act(nil, flappy.State{}) != flappy.ActionFlap {
		t.Error("unexpected action from created policy")
	}

	found := false
	for _, info := range List() {
		if info.Name == "test-const" {
			found = true
			if info.Description != "always the same action" {
				t.Errorf("Description = %q", info.Description)
			}
		}
	}
	if !found {
		t.Error("List() missing registered policy")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-policy", flappy.Rules{}, 0); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func(flappy.Rules, int64) Policy { return constPolicy{} }
	Register("test-dup", f)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("test-dup", f)
}

func TestListSorted(t *testing.T) {
	f := func(flappy.Rules, int64) Policy { return constPolicy{} }
	Register("test-zz", f)
	Register("test-aa", f)

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].Name > list[i].Name {
			t.Fatalf("List() not sorted: %q before %q", list[i-1].Name, list[i].Name)
		}
	}
}
