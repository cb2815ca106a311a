package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"150\n", 150},
		{"  99.5  \n", 99.5},
		{"1e2", 100},
		{"0", 0},
		{"-12.5 trailing", -12.5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompterFromReader(strings.NewReader(tt.input), &out)
			got, err := p.Float("Enter a underlying price: ")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Enter a underlying price: ", out.String())
		})
	}
}

func TestFloatRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "   \n", "abc", "12abc", "NaN", "Inf", "-inf", "1,5"} {
		t.Run(input, func(t *testing.T) {
			p := NewPrompterFromReader(strings.NewReader(input), &bytes.Buffer{})
			_, err := p.Float("> ")
			require.ErrorIs(t, err, ErrInvalidNumber)
		})
	}
}

func TestFloatReadsSuccessiveTokens(t *testing.T) {
	p := NewPrompterFromReader(strings.NewReader("1 2\n3"), &bytes.Buffer{})
	for _, want := range []float64{1, 2, 3} {
		got, err := p.Float("")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseFloatMessageNamesToken(t *testing.T) {
	_, err := ParseFloat("abc")
	require.Error(t, err)
	assert.Equal(t, `"abc": invalid number`, err.Error())
}

func TestPrintln(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompterFromReader(strings.NewReader(""), &out)
	require.NoError(t, p.Println("hello"))
	assert.Equal(t, "hello\n", out.String())
}
