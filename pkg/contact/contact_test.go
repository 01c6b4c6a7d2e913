package contact

import "testing"

func TestOwnsMatchesAnyNumberFormat(t *testing.T) {
	c := Contact{ID: "c1", Name: "Ada", PhoneNumbers: []string{"(555) 123-4567"}}
	if !c.Owns("555-123-4567") {
		t.Fatalf("formatting differences must not break ownership")
	}
	if !c.Owns("123-4567") {
		t.Fatalf("suffix forms of an owned number must match")
	}
	if c.Owns("555-999-0000") {
		t.Fatalf("foreign numbers must not match")
	}
}

func TestFindResolvesIDNameAndNumber(t *testing.T) {
	book := []Contact{
		{ID: "c1", Name: "Ada Lovelace", PhoneNumbers: []string{"555-123-4567"}},
		{ID: "c2", Name: "Grace Hopper", PhoneNumbers: []string{"555-987-6543"}},
	}

	if c, ok := Find(book, "c2"); !ok || c.ID != "c2" {
		t.Fatalf("find by id failed: %+v %v", c, ok)
	}
	if c, ok := Find(book, "ada lovelace"); !ok || c.ID != "c1" {
		t.Fatalf("find by case-insensitive name failed: %+v %v", c, ok)
	}
	if c, ok := Find(book, "(555) 987-6543"); !ok || c.ID != "c2" {
		t.Fatalf("find by number failed: %+v %v", c, ok)
	}
	if _, ok := Find(book, "nobody"); ok {
		t.Fatalf("unknown reference must miss")
	}
	if _, ok := Find(book, "  "); ok {
		t.Fatalf("blank reference must miss")
	}
}

func TestMintIDStable(t *testing.T) {
	c := Contact{Name: "Ada Lovelace", PhoneNumbers: []string{"555-123-4567"}}
	a := MintID(c)
	b := MintID(c)
	if a != b {
		t.Fatalf("minted ids must be stable across loads: %s vs %s", a, b)
	}
	if len(a) != 26 {
		t.Fatalf("minted id should be a ULID, got %q", a)
	}

	other := MintID(Contact{Name: "Grace Hopper", PhoneNumbers: []string{"555-987-6543"}})
	if a == other {
		t.Fatalf("different contacts must mint different ids")
	}
}
