package notion

import (
	"context"
	"errors"
	"testing"

	"github.com/jomei/notionapi"
)

type fakeDatabases struct {
	notionapi.DatabaseService
	responses []*notionapi.DatabaseQueryResponse
	errs      []error
	requests  []*notionapi.DatabaseQueryRequest
}

func (f *fakeDatabases) Query(ctx context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	f.requests = append(f.requests, req)

	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}

	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func episodePage(title string) notionapi.Page {
	return notionapi.Page{
		Properties: notionapi.Properties{
			episodeProperty: &notionapi.RichTextProperty{
				RichText: []notionapi.RichText{
					{Text: &notionapi.Text{Content: title}},
				},
			},
		},
	}
}

func TestLedgerLoadPaginates(t *testing.T) {
	databases := &fakeDatabases{
		responses: []*notionapi.DatabaseQueryResponse{
			{
				Results:    []notionapi.Page{episodePage("Episode 1"), episodePage("Episode 2")},
				HasMore:    true,
				NextCursor: notionapi.Cursor("cursor-1"),
			},
			{
				Results: []notionapi.Page{episodePage("Episode 3")},
				HasMore: false,
			},
		},
	}

	ledger := NewLedger(databases, "db-id")
	ledger.Load(context.Background())

	if ledger.Len() != 3 {
		t.Errorf("Expected 3 titles loaded, got %d", ledger.Len())
	}
	for _, title := range []string{"Episode 1", "Episode 2", "Episode 3"} {
		if !ledger.Contains(title) {
			t.Errorf("Expected ledger to contain %q", title)
		}
	}

	if len(databases.requests) != 2 {
		t.Fatalf("Expected 2 query requests, got %d", len(databases.requests))
	}
	if databases.requests[0].StartCursor != "" {
		t.Error("First request should not carry a cursor")
	}
	if databases.requests[1].StartCursor != notionapi.Cursor("cursor-1") {
		t.Errorf("Second request should carry the continuation cursor, got %q", databases.requests[1].StartCursor)
	}
}

func TestLedgerLoadDegradesOnError(t *testing.T) {
	databases := &fakeDatabases{
		responses: []*notionapi.DatabaseQueryResponse{
			{
				Results:    []notionapi.Page{episodePage("Episode 1")},
				HasMore:    true,
				NextCursor: notionapi.Cursor("cursor-1"),
			},
		},
		errs: []error{nil, errors.New("network down")},
	}

	ledger := NewLedger(databases, "db-id")
	ledger.Load(context.Background()) // must not panic or propagate

	if ledger.Len() != 1 {
		t.Errorf("Expected partial set of 1 title, got %d", ledger.Len())
	}
	if !ledger.Contains("Episode 1") {
		t.Error("Expected accumulated title to survive the failure")
	}
}

func TestLedgerLoadSkipsMalformedPages(t *testing.T) {
	databases := &fakeDatabases{
		responses: []*notionapi.DatabaseQueryResponse{
			{
				Results: []notionapi.Page{
					episodePage("Good Episode"),
					{}, // no properties at all
					{Properties: notionapi.Properties{
						episodeProperty: &notionapi.RichTextProperty{}, // empty rich text
					}},
					{Properties: notionapi.Properties{
						episodeProperty: &notionapi.TitleProperty{}, // wrong property type
					}},
				},
				HasMore: false,
			},
		},
	}

	ledger := NewLedger(databases, "db-id")
	ledger.Load(context.Background())

	if ledger.Len() != 1 {
		t.Errorf("Expected only the well-formed page to load, got %d titles", ledger.Len())
	}
}

func TestLedgerLoadPlainTextFallback(t *testing.T) {
	databases := &fakeDatabases{
		responses: []*notionapi.DatabaseQueryResponse{
			{
				Results: []notionapi.Page{
					{Properties: notionapi.Properties{
						episodeProperty: &notionapi.RichTextProperty{
							RichText: []notionapi.RichText{{PlainText: "Plain Episode"}},
						},
					}},
				},
				HasMore: false,
			},
		},
	}

	ledger := NewLedger(databases, "db-id")
	ledger.Load(context.Background())

	if !ledger.Contains("Plain Episode") {
		t.Error("Expected plain text fallback to populate the ledger")
	}
}

func TestLedgerContainsAndAdd(t *testing.T) {
	ledger := NewLedger(&fakeDatabases{}, "db-id")

	if ledger.Contains("Episode X") {
		t.Error("Empty ledger should not contain anything")
	}

	ledger.Add("Episode X")

	if !ledger.Contains("Episode X") {
		t.Error("Expected ledger to contain added title")
	}
	if ledger.Len() != 1 {
		t.Errorf("Expected 1 title, got %d", ledger.Len())
	}
}
