package athlinks

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeSource replays a scripted sequence of pages.
type fakeSource struct {
	pages   [][]CourseBlock
	errs    []error
	offsets []int
}

func (f *fakeSource) FetchPage(_ context.Context, from, limit int) ([]CourseBlock, error) {
	call := len(f.offsets)
	f.offsets = append(f.offsets, from)
	if call >= len(f.pages) {
		return nil, fmt.Errorf("unexpected page request at offset %d", from)
	}
	return f.pages[call], f.errs[call]
}

// blockWithResults builds one course with a single interval carrying n
// participant records.
func blockWithResults(n int) CourseBlock {
	results := make([]RawResult, n)
	for i := range results {
		results[i] = RawResult{DisplayName: fmt.Sprintf("Runner %d", i)}
	}
	return CourseBlock{
		Intervals: []Interval{{Results: results}},
	}
}

func TestFetchAllResultsStopsOnEmptyPage(t *testing.T) {
	src := &fakeSource{
		pages: [][]CourseBlock{
			{blockWithResults(PageSize)},
			{},
		},
		errs: []error{nil, nil},
	}

	blocks, err := FetchAllResults(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, []int{0, 100}, src.offsets)
	require.Len(t, blocks, 1)
	require.Equal(t, PageSize, countResults(blocks))
}

func TestFetchAllResultsEmptyEvent(t *testing.T) {
	src := &fakeSource{
		pages: [][]CourseBlock{{}},
		errs:  []error{nil},
	}

	blocks, err := FetchAllResults(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, []int{0}, src.offsets)
	require.Empty(t, blocks)
}

func TestFetchAllResultsFailsImmediately(t *testing.T) {
	src := &fakeSource{
		pages: [][]CourseBlock{nil},
		errs:  []error{fmt.Errorf("connection refused")},
	}

	blocks, err := FetchAllResults(context.Background(), src)
	require.Error(t, err)
	require.Equal(t, []int{0}, src.offsets)
	require.Empty(t, blocks)
}

func TestFetchAllResultsKeepsPartialData(t *testing.T) {
	src := &fakeSource{
		pages: [][]CourseBlock{
			{blockWithResults(PageSize)},
			nil,
		},
		errs: []error{nil, fmt.Errorf("gateway timeout")},
	}

	blocks, err := FetchAllResults(context.Background(), src)
	require.Error(t, err)
	require.Equal(t, []int{0, 100}, src.offsets)
	require.Equal(t, PageSize, countResults(blocks))
}
