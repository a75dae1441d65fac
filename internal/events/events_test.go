package events

import (
	"testing"
	"time"
)

func TestNewBus(t *testing.T) {
	bus := NewBus()
	if bus == nil {
		t.Fatal("NewBus() returned nil")
	}
	if bus.SceneChanges == nil {
		t.Fatal("SceneChanges channel is nil")
	}
	if bus.Rounds == nil {
		t.Fatal("Rounds channel is nil")
	}
}

func TestBus_SendReceive(t *testing.T) {
	bus := NewBus()

	go func() {
		bus.Rounds <- RoundEvent{Number: 3, Criterion: "mass_kg"}
	}()

	select {
	case received := <-bus.Rounds:
		if received.Number != 3 || received.Criterion != "mass_kg" {
			t.Errorf("received %+v, want number 3, criterion mass_kg", received)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBus_Buffered(t *testing.T) {
	bus := NewBus()

	// Should be able to send up to 10 without blocking
	for i := 0; i < 10; i++ {
		bus.SceneChanges <- SceneChangeEvent{Scene: "playing"}
	}

	for i := 0; i < 10; i++ {
		<-bus.SceneChanges
	}
}
