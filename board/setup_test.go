package board

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCellsYAMLRoundTrip(t *testing.T) {
	cells := StandardCells()

	data, err := yaml.Marshal(cells)
	require.NoError(t, err)

	var got Cells
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.Equal(t, cells, got)
}

func TestCellsYAMLUsesPieceLetters(t *testing.T) {
	cells := StandardCells()

	data, err := yaml.Marshal(cells)
	require.NoError(t, err)

	var rows []string
	require.NoError(t, yaml.Unmarshal(data, &rows))
	require.Len(t, rows, 8)
	require.Equal(t, "RNBQKBNR", rows[0], "rank 8 (Black back rank) comes first")
	require.Equal(t, "rnbqkbnr", rows[7], "rank 1 (White back rank) comes last")
}

func TestCellsUnmarshalRejectsWrongRowCount(t *testing.T) {
	var c Cells
	err := yaml.Unmarshal([]byte("- rnbqkbnr\n- pppppppp\n"), &c)
	require.Error(t, err)
}

func TestCellsUnmarshalRejectsWrongRowLength(t *testing.T) {
	var c Cells
	err := yaml.Unmarshal([]byte(`
- rnbqkbnr
- pppppppp
- "......."
- "........"
- "........"
- "........"
- PPPPPPPP
- RNBQKBNR
`), &c)
	require.Error(t, err)
}
