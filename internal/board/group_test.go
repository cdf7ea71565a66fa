package board

import (
	"reflect"
	"sort"
	"testing"
)

func TestGroupByMatch_FirstOccurrenceOrder(t *testing.T) {
	records := []BetRecord{
		bet("B1", "M3", "5"),
		bet("B2", "M1", "10"),
		bet("B3", "M3", "7"),
		bet("B4", "M2", "1"),
		bet("B5", "M1", "2"),
	}

	groups, rep := GroupByMatch(records)
	if !rep.Empty() {
		t.Fatalf("expected empty report, got %+v", rep)
	}

	var order []string
	for _, g := range groups {
		order = append(order, g.MatchID)
	}
	if want := []string{"M3", "M1", "M2"}; !reflect.DeepEqual(order, want) {
		t.Errorf("expected group order %v, got %v", want, order)
	}

	if got := ids(groups[0].Members); !reflect.DeepEqual(got, []string{"B1", "B3"}) {
		t.Errorf("expected M3 members [B1 B3], got %v", got)
	}
	if got := ids(groups[1].Members); !reflect.DeepEqual(got, []string{"B2", "B5"}) {
		t.Errorf("expected M1 members [B2 B5], got %v", got)
	}
}

func TestGroupByMatch_Conservation(t *testing.T) {
	records := []BetRecord{
		bet("A", "M1", "1"),
		bet("B", "M2", "2"),
		bet("C", "M1", "3"),
		bet("D", "M3", "4"),
		bet("E", "M2", "5"),
		bet("F", "M1", "6"),
	}

	groups, _ := GroupByMatch(records)

	var got []string
	for _, g := range groups {
		got = append(got, ids(g.Members)...)
	}
	var want []string
	for _, r := range records {
		want = append(want, r.ID)
	}
	sort.Strings(got)
	sort.Strings(want)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected ids %v across groups, got %v", want, got)
	}
}

func TestGroupByMatch_MembersReferenceInput(t *testing.T) {
	records := []BetRecord{bet("B1", "M1", "1")}
	groups, _ := GroupByMatch(records)
	if groups[0].Members[0] != &records[0] {
		t.Error("expected group member to point at the input record")
	}
}

func TestGroupByMatch_EmptyMatchIDExcluded(t *testing.T) {
	records := []BetRecord{
		bet("B1", "M1", "10"),
		bet("B2", "", "10"),
		bet("B3", "M1", "5"),
	}

	groups, rep := GroupByMatch(records)

	if len(groups) != 1 || groups[0].MemberCount() != 2 {
		t.Fatalf("expected one group with 2 members, got %+v", groups)
	}
	if len(rep.Invalid) != 1 {
		t.Fatalf("expected 1 validation error, got %d", len(rep.Invalid))
	}
	if got := rep.InvalidIDs(); !reflect.DeepEqual(got, []string{"B2"}) {
		t.Errorf("expected invalid ids [B2], got %v", got)
	}
	if rep.Invalid[0].Index != 1 {
		t.Errorf("expected invalid index 1, got %d", rep.Invalid[0].Index)
	}
}

func TestGroupByMatch_DuplicateIDKeepsFirst(t *testing.T) {
	first := bet("B1", "M1", "10")
	dup := bet("B1", "M1", "99")

	groups, rep := GroupByMatch([]BetRecord{first, dup})

	if len(rep.Duplicates) != 1 {
		t.Fatalf("expected 1 duplicate, got %d", len(rep.Duplicates))
	}
	if d := rep.Duplicates[0]; d.ID != "B1" || d.Index != 1 || d.FirstIdx != 0 {
		t.Errorf("unexpected duplicate error %+v", d)
	}
	if len(groups) != 1 || groups[0].MemberCount() != 1 {
		t.Fatalf("expected a single member group, got %+v", groups)
	}
	if total := Summarize(groups[0]).TotalStake; !total.Equal(first.Stake) {
		t.Errorf("expected total stake %s, got %s", first.Stake, total)
	}
}

func TestGroupByMatch_MatchConflictReported(t *testing.T) {
	a := bet("B1", "M1", "1")
	b := bet("B2", "M1", "1")
	b.League = "LPL"

	groups, rep := GroupByMatch([]BetRecord{a, b})

	if len(rep.Conflicts) != 1 || rep.Conflicts[0].BetID != "B2" {
		t.Fatalf("expected conflict for B2, got %+v", rep.Conflicts)
	}
	if groups[0].Match.League != "LCK" {
		t.Errorf("expected first member's league to win, got %s", groups[0].Match.League)
	}
	if groups[0].MemberCount() != 2 {
		t.Errorf("conflicting member must still be grouped")
	}
	if rep.Err() != nil {
		t.Errorf("conflicts must not surface as errors, got %v", rep.Err())
	}
}

func TestGroupByMatch_Empty(t *testing.T) {
	groups, rep := GroupByMatch(nil)
	if len(groups) != 0 || !rep.Empty() {
		t.Errorf("expected no groups and empty report, got %v %+v", groups, rep)
	}
}
