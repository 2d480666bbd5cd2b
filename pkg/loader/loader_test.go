package loader

import (
	"slices"
	"testing"
)

func TestDefaultLoader(t *testing.T) {
	tests := []struct {
		name string
		in   LoaderProps
		want string
	}{
		{"width and quality", LoaderProps{Src: "img/a.jpg", Width: 400, Quality: 75}, "img/a.jpg?w=400&q=75"},
		{"width only", LoaderProps{Src: "img/a.jpg", Width: 400}, "img/a.jpg?w=400"},
		{"quality only", LoaderProps{Src: "img/a.jpg", Quality: 50}, "img/a.jpg?q=50"},
		{"neither", LoaderProps{Src: "img/a.jpg"}, "img/a.jpg"},
		{"existing query", LoaderProps{Src: "img/a.jpg?v=2", Width: 640, Quality: 75}, "img/a.jpg?v=2&w=640&q=75"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultLoader(tt.in); got != tt.want {
				t.Errorf("DefaultLoader(%+v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGenerateExample(t *testing.T) {
	set := Generate(Request{Src: "img/a.jpg", Width: 400, Quality: 75}, DefaultLoader)

	if set.PrimaryURL != "img/a.jpg?w=400&q=75" {
		t.Errorf("PrimaryURL = %q", set.PrimaryURL)
	}
	want := []string{"img/a.jpg?w=640&q=75 640w", "img/a.jpg?w=750&q=75 750w"}
	var got []string
	for _, c := range set.Candidates {
		got = append(got, c.Descriptor())
	}
	if !slices.Equal(got, want) {
		t.Errorf("candidates = %v, want %v", got, want)
	}
	if set.SrcSet() != "img/a.jpg?w=640&q=75 640w, img/a.jpg?w=750&q=75 750w" {
		t.Errorf("SrcSet = %q", set.SrcSet())
	}
}

func TestGenerateCandidatesBoundedAndAscending(t *testing.T) {
	for _, width := range []int{1, 100, 319, 320, 375, 414, 540, 600, 960, 1024, 1920, 5000} {
		set := Generate(Request{Src: "x.png", Width: width}, DefaultLoader)
		prev := 0
		for _, c := range set.Candidates {
			if c.Width > 2*width {
				t.Errorf("width %d: candidate %d exceeds 2x", width, c.Width)
			}
			if c.Width <= prev {
				t.Errorf("width %d: candidates not ascending at %d", width, c.Width)
			}
			if !slices.Contains(DefaultBreakpoints, c.Width) {
				t.Errorf("width %d: candidate %d is not a breakpoint", width, c.Width)
			}
			want := DefaultLoader(LoaderProps{Src: "x.png", Width: c.Width, Quality: DefaultQuality})
			if c.URL != want {
				t.Errorf("width %d: candidate URL %q, want %q", width, c.URL, want)
			}
			prev = c.Width
		}
		wantCount := 0
		for _, bp := range DefaultBreakpoints {
			if bp <= 2*width {
				wantCount++
			}
		}
		if len(set.Candidates) != wantCount {
			t.Errorf("width %d: %d candidates, want %d", width, len(set.Candidates), wantCount)
		}
	}
}

func TestGenerateNoSurvivingBreakpoints(t *testing.T) {
	set := Generate(Request{Src: "x.png", Width: 200}, DefaultLoader)
	if len(set.Candidates) != 0 {
		t.Errorf("expected no candidates, got %v", set.Candidates)
	}
	if set.SrcSet() != "" {
		t.Errorf("SrcSet = %q, want empty", set.SrcSet())
	}
}

func TestGenerateWithoutWidth(t *testing.T) {
	set := Generate(Request{Src: "x.png", Quality: 90}, DefaultLoader)
	if set.PrimaryURL != "x.png?w=640&q=90" {
		t.Errorf("PrimaryURL = %q", set.PrimaryURL)
	}
	if set.Candidates != nil {
		t.Errorf("expected no candidates without width, got %v", set.Candidates)
	}
}

func TestGenerateUnoptimized(t *testing.T) {
	for _, req := range []Request{
		{Src: "img/a.jpg", Width: 400, Quality: 10, Unoptimized: true},
		{Src: "img/a.jpg", Unoptimized: true},
		{Src: "img/a.jpg", Width: 4000, Quality: 100, Unoptimized: true},
	} {
		set := Generate(req, DefaultLoader)
		if set.PrimaryURL != "img/a.jpg" || len(set.Candidates) != 0 {
			t.Errorf("Generate(%+v) = %+v", req, set)
		}
	}
}

func TestGenerateNilLoader(t *testing.T) {
	set := Generate(Request{Src: "img/a.jpg", Width: 400}, nil)
	if set.PrimaryURL != "img/a.jpg" || len(set.Candidates) != 0 {
		t.Errorf("nil loader: %+v", set)
	}
}

func TestGeneratePassesLoaderOutputThrough(t *testing.T) {
	weird := func(p LoaderProps) string { return "::not a url::" }
	set := Generate(Request{Src: "a", Width: 320}, weird)
	if set.PrimaryURL != "::not a url::" {
		t.Errorf("PrimaryURL = %q", set.PrimaryURL)
	}
	if len(set.Candidates) != 1 || set.Candidates[0].URL != "::not a url::" {
		t.Errorf("candidates = %+v", set.Candidates)
	}
}

func TestGenerateWithCustomBreakpoints(t *testing.T) {
	set := GenerateWith(Request{Src: "a", Width: 100}, DefaultLoader, []int{100, 200, 300})
	if len(set.Candidates) != 2 || set.Candidates[1].Width != 200 {
		t.Errorf("candidates = %+v", set.Candidates)
	}
}

func TestBaseURLLoader(t *testing.T) {
	fn := BaseURLLoader("https://cdn.example.com/assets/", nil)

	tests := []struct {
		src  string
		want string
	}{
		{"/a.jpg", "https://cdn.example.com/assets/a.jpg?w=640"},
		{"img/b.png", "https://cdn.example.com/assets/img/b.png?w=640"},
		{"https://other.example.com/c.jpg", "https://other.example.com/c.jpg?w=640"},
		{"//other.example.com/d.jpg", "//other.example.com/d.jpg?w=640"},
	}
	for _, tt := range tests {
		if got := fn(LoaderProps{Src: tt.src, Width: 640}); got != tt.want {
			t.Errorf("BaseURLLoader(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestBaseURLLoaderEmptyBase(t *testing.T) {
	fn := BaseURLLoader("", nil)
	if got := fn(LoaderProps{Src: "a.jpg", Width: 1}); got != "a.jpg?w=1" {
		t.Errorf("got %q", got)
	}
}

func TestGenerateLoaderPanicPropagates(t *testing.T) {
	panicked := false
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicked = r == "bad loader"
			}
		}()
		Generate(Request{Src: "/a.jpg", Width: 400}, func(LoaderProps) string { panic("bad loader") })
	}()
	if !panicked {
		t.Error("a panicking loader should panic the caller of Generate")
	}
}
