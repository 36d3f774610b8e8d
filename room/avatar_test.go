package room

import (
	"testing"
)

func TestAssignAvatar_Exclusive(t *testing.T) {
	r := NewRoom("ABC", nil, 1)

	seen := make(map[Avatar]bool)
	for i := 0; i < MasterDeckSize(); i++ {
		avatar := r.AssignAvatar()
		if seen[avatar] {
			t.Fatalf("Avatar %v handed out twice while the pool was not exhausted", avatar)
		}
		seen[avatar] = true
	}

	if len(r.AvailableAvatars) != 0 {
		t.Errorf("Pool should be empty after assigning the full deck, got %d", len(r.AvailableAvatars))
	}
}

func TestAssignAvatar_FallbackWhenExhausted(t *testing.T) {
	r := NewRoom("ABC", nil, 1)
	for i := 0; i < MasterDeckSize(); i++ {
		r.AssignAvatar()
	}

	// 池空时从总库共享取用，不再独占，也不会崩
	avatar := r.AssignAvatar()
	if avatar.Img == "" {
		t.Error("Fallback assignment should still produce a real avatar")
	}
	if len(r.AvailableAvatars) != 0 {
		t.Errorf("Fallback must not touch the pool, got %d entries", len(r.AvailableAvatars))
	}
}

func TestReleaseAvatar_NoDedup(t *testing.T) {
	r := NewRoom("ABC", nil, 1)
	avatar := r.AssignAvatar()

	r.ReleaseAvatar(avatar)
	if len(r.AvailableAvatars) != MasterDeckSize() {
		t.Fatalf("Release should return the avatar to the pool, got %d", len(r.AvailableAvatars))
	}

	// 走过共享降级路径后同一形象可能被释放两次，池里允许重复
	r.ReleaseAvatar(avatar)
	if len(r.AvailableAvatars) != MasterDeckSize()+1 {
		t.Errorf("Release must not dedup, got %d entries", len(r.AvailableAvatars))
	}
}
