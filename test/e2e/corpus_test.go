package e2e

import (
	"testing"
	"unicode/utf8"

	"github.com/hyperjump/jinzai/internal/intake"
	"github.com/hyperjump/jinzai/internal/models"
)

func TestBuildCorpus_Returns60Resumes(t *testing.T) {
	corpus := BuildCorpus()
	if corpus.TotalResumes != 60 {
		t.Errorf("TotalResumes = %d, want 60", corpus.TotalResumes)
	}
	if len(corpus.Resumes) != corpus.TotalResumes {
		t.Errorf("len(Resumes) = %d, want %d", len(corpus.Resumes), corpus.TotalResumes)
	}

	seen := make(map[string]bool)
	for _, r := range corpus.Resumes {
		if r.Filename == "" {
			t.Error("resume with empty filename")
		}
		if r.Content == "" {
			t.Errorf("%s: empty content", r.Filename)
		}
		if seen[r.Filename] {
			t.Errorf("duplicate filename %s", r.Filename)
		}
		seen[r.Filename] = true
	}
}

// The suite's scoring assertions only hold if every resume is stored whole:
// the preview must be the full text and the embedding input must not be
// truncated. Guard both so a longer profile added later fails loudly here
// instead of as a mysterious score mismatch.
func TestBuildCorpus_ContentsFitStorageLimits(t *testing.T) {
	corpus := BuildCorpus()
	for _, r := range corpus.Resumes {
		if n := utf8.RuneCountInString(r.Content); n > models.PreviewLength {
			t.Errorf("%s: content is %d runes, exceeds the stored preview length %d",
				r.Filename, n, models.PreviewLength)
		}
		if intake.Preprocess(r.Content) != intake.Clean(r.Content) {
			t.Errorf("%s: content is long enough to be truncated before embedding", r.Filename)
		}
	}
}

func TestBuildCorpus_QueryTestCasesExist(t *testing.T) {
	corpus := BuildCorpus()
	if corpus.TotalQueries == 0 {
		t.Fatal("corpus has no query test cases")
	}
	if len(corpus.TestCases) != corpus.TotalQueries {
		t.Errorf("len(TestCases) = %d, want %d", len(corpus.TestCases), corpus.TotalQueries)
	}
	for _, tc := range corpus.TestCases {
		if tc.Query == "" {
			t.Errorf("case %q has an empty query", tc.Description)
		}
		if len(tc.ExpectedFilenames) == 0 {
			t.Errorf("case %q expects no filenames", tc.Description)
		}
	}
}

// Every expected resume must preprocess to the same string as its query.
// That equality is what makes the mock embedder score the pair at exactly
// 1.0, which the end-to-end assertions rely on.
func TestBuildCorpus_ExpectedResumesEmbedIdentically(t *testing.T) {
	corpus := BuildCorpus()
	byFilename := make(map[string]string, len(corpus.Resumes))
	for _, r := range corpus.Resumes {
		byFilename[r.Filename] = r.Content
	}

	for _, tc := range corpus.TestCases {
		cleaned := intake.Preprocess(tc.Query)
		if cleaned == "" {
			t.Errorf("case %q preprocesses to an empty query", tc.Description)
			continue
		}
		for _, filename := range tc.ExpectedFilenames {
			content, ok := byFilename[filename]
			if !ok {
				t.Errorf("case %q expects %s, which is not in the corpus", tc.Description, filename)
				continue
			}
			if intake.Preprocess(content) != cleaned {
				t.Errorf("case %q: %s does not preprocess to the query text", tc.Description, filename)
			}
		}
	}
}

// The corpus repeats the first twenty contents under second filenames, so
// their queries must expect both copies.
func TestBuildCorpus_DuplicateContentsExpectBothCopies(t *testing.T) {
	corpus := BuildCorpus()
	if len(corpus.TestCases) == 0 {
		t.Fatal("corpus has no query test cases")
	}
	tc := corpus.TestCases[0]
	if len(tc.ExpectedFilenames) != 2 {
		t.Fatalf("case %q expects %v, want exactly two copies", tc.Description, tc.ExpectedFilenames)
	}
	if tc.ExpectedFilenames[0] == tc.ExpectedFilenames[1] {
		t.Errorf("case %q expects the same filename twice: %v", tc.Description, tc.ExpectedFilenames)
	}
}
