package services

import (
	"slices"
	"sync"
	"testing"
)

func TestSubject(t *testing.T) {
	subject := NewSubject(0)

	var a, b []int
	unsubA := subject.Subscribe(func(v int) { a = append(a, v) })
	subject.Publish(1)
	unsubB := subject.Subscribe(func(v int) { b = append(b, v) })
	subject.Publish(2)
	unsubA()
	subject.Publish(3)
	unsubB()
	subject.Publish(4)

	if want := []int{0, 1, 2}; !slices.Equal(a, want) {
		t.Fatalf("a = %v, want %v", a, want)
	}
	if want := []int{1, 2, 3}; !slices.Equal(b, want) {
		t.Fatalf("b = %v, want %v", b, want)
	}
	if subject.Value() != 4 {
		t.Fatalf("Value() = %d", subject.Value())
	}
}

func TestSubjectReplayNeverOvertakesPublish(t *testing.T) {
	subject := NewSubject(0)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 500; i++ {
			subject.Publish(i)
		}
	}()

	var seen []int
	unsubscribe := subject.Subscribe(func(v int) { seen = append(seen, v) })
	wg.Wait()
	unsubscribe()

	if len(seen) == 0 {
		t.Fatalf("no values delivered")
	}
	for i := 1; i < len(seen); i++ {
		if seen[i] <= seen[i-1] {
			t.Fatalf("value %d delivered after %d", seen[i], seen[i-1])
		}
	}
	if last := seen[len(seen)-1]; last != 500 {
		t.Fatalf("last value = %d, want 500", last)
	}
}
