package snapshot

import (
	"context"
	"testing"
)

func TestMemoryStoreSaveLoadRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	snap := Snapshot{
		RunID: "run-1",
		Entries: []Entry{
			{CellName: "nullable(S)", Value: true, DiscoveryTime: 2, FinishTime: 7},
		},
	}

	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(ctx, "run-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.RunID != snap.RunID || len(got.Entries) != 1 || got.Entries[0] != snap.Entries[0] {
		t.Fatalf("Load = %+v, want %+v", got, snap)
	}
}

func TestMemoryStoreLoadMissingRunReturnsErrNotFound(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Load(context.Background(), "no-such-run")
	if err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreSaveOverwritesPriorSnapshot(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Save(ctx, Snapshot{RunID: "run-1", Entries: []Entry{{CellName: "a", Value: 1}}})
	_ = store.Save(ctx, Snapshot{RunID: "run-1", Entries: []Entry{{CellName: "a", Value: 2}}})

	got, err := store.Load(ctx, "run-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Entries) != 1 || got.Entries[0].Value != 2 {
		t.Fatalf("Load = %+v, want single entry with Value=2", got)
	}
}
