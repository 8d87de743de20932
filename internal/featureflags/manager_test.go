package featureflags

import "testing"

func TestEnabled_BooleanValues(t *testing.T) {
	m := NewManager("a=on,b=off,c=true,d=false,e=1,f=0")

	if !m.Enabled("a", "") || !m.Enabled("c", "") || !m.Enabled("e", "") {
		t.Fatal("expected enabled boolean values to evaluate true")
	}
	if m.Enabled("b", "") || m.Enabled("d", "") || m.Enabled("f", "") {
		t.Fatal("expected disabled boolean values to evaluate false")
	}
	if m.Enabled("missing", "") {
		t.Fatal("unknown flags must be disabled")
	}
}

func TestEnabled_PercentageValues(t *testing.T) {
	m := NewManager("always=100%,never=0%,canary=25%")

	if !m.Enabled("always", "") {
		t.Fatal("100% rollout should always be enabled")
	}
	if m.Enabled("never", "alice") {
		t.Fatal("0% rollout should always be disabled")
	}

	first := m.Enabled("canary", "alice")
	for i := 0; i < 5; i++ {
		if got := m.Enabled("canary", "alice"); got != first {
			t.Fatal("rollout evaluation must be deterministic per subject")
		}
	}

	if m.Enabled("canary", "") {
		t.Fatal("percentage rollout requires a subject")
	}
}

func TestParse(t *testing.T) {
	m := NewManager(" bad ,Legacy_Comment_IDs=ON, y = 20% ,z=off ")

	raw := m.Raw()
	if len(raw) != 3 {
		t.Fatalf("expected 3 parsed flags, got %d", len(raw))
	}
	if raw[LegacyCommentIDs] != "on" || raw["y"] != "20%" || raw["z"] != "off" {
		t.Fatalf("unexpected raw flags: %#v", raw)
	}
	if !m.Enabled(LegacyCommentIDs, "") {
		t.Fatal("expected legacy_comment_ids to be enabled")
	}
}

func TestNilManager(t *testing.T) {
	var m *Manager
	if m.Enabled(LegacyCommentIDs, "") {
		t.Fatal("nil manager must report every flag disabled")
	}
}
