package progressbar

import (
	"bytes"
	"strings"
	"testing"
)

func TestManualProgressBar(t *testing.T) {
	var buf bytes.Buffer
	bar := NewManualProgressBar(&buf, 10, 4)

	for i := 0; i < 6; i++ {
		bar.Increment()
	}
	if bar.Fraction() != 1 {
		t.Errorf("fraction: \n\twant(%v) \n\thave(%v)", 1, bar.Fraction())
	}

	bar.Display()
	if !strings.Contains(buf.String(), "100.00%") {
		t.Errorf("display: %q", buf.String())
	}
	if n := strings.Count(bar.String(), "█"); n != 10 {
		t.Errorf("bar width: \n\twant(%v) \n\thave(%v)", 10, n)
	}
}
