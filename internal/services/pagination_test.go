package services

import "testing"

func TestPageQueryNormalize(t *testing.T) {
	cases := []struct {
		in   PageQuery
		want PageQuery
	}{
		{PageQuery{}, PageQuery{Page: 1, Size: DefaultPageSize}},
		{PageQuery{Page: -3, Size: 500}, PageQuery{Page: 1, Size: MaxPageSize}},
		{PageQuery{Page: 4, Size: 1, Q: "  py "}, PageQuery{Page: 4, Size: 1, Q: "py"}},
	}
	for _, tc := range cases {
		if got := tc.in.Normalize(); got != tc.want {
			t.Fatalf("Normalize(%+v): want=%+v got=%+v", tc.in, tc.want, got)
		}
	}
}

func TestPaginatePastEndIsEmpty(t *testing.T) {
	items := []int{1, 2, 3}
	page := Paginate(items, PageQuery{Page: 9, Size: 2})
	if len(page.Items) != 0 || page.Total != 3 || page.TotalPages != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}
	page = Paginate(items, PageQuery{Page: 2, Size: 2})
	if len(page.Items) != 1 || page.Items[0] != 3 {
		t.Fatalf("last page: %+v", page)
	}
	page.Items[0] = 99
	if items[2] != 3 {
		t.Fatalf("page aliases input")
	}
}
