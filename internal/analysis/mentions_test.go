package analysis

import (
	"testing"

	"maku/internal/registry"
)

func charactersWith(pairs ...[2]any) *registry.CharacterSet {
	set := registry.NewCharacterSet()
	for _, pair := range pairs {
		name := pair[0].(string)
		nicknames := pair[1].([]string)
		set.Add(name, nicknames...)
	}
	return set
}

func TestCountMentionsRepeatedNickname(t *testing.T) {
	set := charactersWith([2]any{"A", []string{"哥哥"}})

	tally := CountMentions("哥哥哥哥", set, true)
	if got := tally.Count("A", "哥哥"); got != 2 {
		t.Errorf("count = %d, want 2 (two non-overlapping bites)", got)
	}
}

func TestCountMentionsOverlapLeftmostWins(t *testing.T) {
	// "小明" (A) starts before "明" (B) inside "小明来了"; the earlier
	// start wins and the shadowed match is dropped.
	set := charactersWith(
		[2]any{"A", []string{"小明"}},
		[2]any{"B", []string{"明"}},
	)

	tally := CountMentions("小明来了", set, true)
	if got := tally.Count("A", "小明"); got != 1 {
		t.Errorf("A count = %d, want 1", got)
	}
	if got := tally.Count("B", "明"); got != 0 {
		t.Errorf("B count = %d, want 0 (shadowed by earlier start)", got)
	}
}

func TestCountMentionsTieBrokenByDeclarationOrder(t *testing.T) {
	// Both nicknames match at the same offset; registry declaration
	// order decides, and the shorter declared-first match shadows the
	// longer one.
	set := charactersWith(
		[2]any{"B", []string{"明"}},
		[2]any{"A", []string{"明月"}},
	)

	tally := CountMentions("明月出天山", set, true)
	if got := tally.Count("B", "明"); got != 1 {
		t.Errorf("B count = %d, want 1 (declared first)", got)
	}
	if got := tally.Count("A", "明月"); got != 0 {
		t.Errorf("A count = %d, want 0", got)
	}
}

func TestCountMentionsModesAreIdentical(t *testing.T) {
	set := charactersWith(
		[2]any{"A", []string{"老沈", "沈教授"}},
		[2]any{"B", []string{"云澜"}},
	)
	text := "老沈说云澜又迟到了，沈教授很无奈"

	exact := CountMentions(text, set, true)
	loose := CountMentions(text, set, false)

	for character, nicknames := range exact {
		for nickname, count := range nicknames {
			if loose.Count(character, nickname) != count {
				t.Errorf("modes disagree for %s/%s: %d vs %d",
					character, nickname, count, loose.Count(character, nickname))
			}
		}
	}
	if exact.Count("A", "老沈") != 1 || exact.Count("A", "沈教授") != 1 || exact.Count("B", "云澜") != 1 {
		t.Errorf("unexpected tally: %v", exact)
	}
}

func TestCountMentionsNoHits(t *testing.T) {
	set := charactersWith([2]any{"A", []string{"哥哥"}})
	tally := CountMentions("完全无关的内容", set, true)
	if len(tally) != 0 {
		t.Errorf("tally = %v, want empty", tally)
	}
}

func TestCountMentionsEmptyRegistry(t *testing.T) {
	tally := CountMentions("哥哥", registry.NewCharacterSet(), true)
	if len(tally) != 0 {
		t.Errorf("tally = %v, want empty", tally)
	}
}

func TestTallyMergeAndTotals(t *testing.T) {
	a := make(Tally)
	a.Add("A", "哥哥", 2)
	a.Add("A", "老大", 1)

	b := make(Tally)
	b.Add("A", "哥哥", 3)
	b.Add("B", "小明", 1)

	a.Merge(b)

	if got := a.Count("A", "哥哥"); got != 5 {
		t.Errorf("merged count = %d, want 5", got)
	}
	if got := a.TotalFor("A"); got != 6 {
		t.Errorf("TotalFor(A) = %d, want 6", got)
	}
	if got := a.TotalFor("B"); got != 1 {
		t.Errorf("TotalFor(B) = %d, want 1", got)
	}
	if got := a.TotalFor("C"); got != 0 {
		t.Errorf("TotalFor(C) = %d, want 0", got)
	}
}
