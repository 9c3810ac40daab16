package mongo

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestObjectID(t *testing.T) {
	notFound := errors.New("not found")

	valid := primitive.NewObjectID()
	got, err := objectID(valid.Hex(), notFound)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != valid {
		t.Errorf("expected %s, got %s", valid.Hex(), got.Hex())
	}

	for _, id := range []string{"", "abc", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		if _, err := objectID(id, notFound); !errors.Is(err, notFound) {
			t.Errorf("objectID(%q): expected not found, got %v", id, err)
		}
	}
}

func TestObjectIDs_SkipsMalformed(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	got := objectIDs([]string{a.Hex(), "bogus", b.Hex()})
	if len(got) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(got))
	}
	if got[0] != a || got[1] != b {
		t.Errorf("unexpected ids: %v", got)
	}
}
