package nav_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leighmacdonald/erp-tui/internal/nav"
	"github.com/stretchr/testify/require"
)

func TestDefaultTreeValid(t *testing.T) {
	require.NoError(t, nav.Default().Validate())
}

func TestActive(t *testing.T) {
	tree := nav.Default()

	item, found := tree.Active("/masters/products/42")
	require.True(t, found)
	require.Equal(t, "Products", item.Label)

	item, found = tree.Active("/finance/ledger")
	require.True(t, found)
	require.Equal(t, "Ledger", item.Label)

	_, found = tree.Active("/masters/productsx")
	require.False(t, found)
}

func TestLoad(t *testing.T) {
	body := `
groups:
  - name: Masters
    icon: M
    items:
      - label: Products
        path: /masters/products
  - name: Finance
    items:
      - label: Invoices
        path: /finance/invoices
        icon: I
`
	path := filepath.Join(t.TempDir(), "nav.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	tree, err := nav.Load(path)
	require.NoError(t, err)
	require.Len(t, tree.Groups, 2)
	require.Equal(t, "Finance", tree.Groups[1].Name)
	require.Equal(t, "I", tree.Groups[1].Items[0].Icon)

	_, errMissing := nav.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, errMissing, nav.ErrRead)
}

func TestParseInvalid(t *testing.T) {
	_, errDup := nav.Parse([]byte("groups:\n  - name: A\n  - name: A\n"))
	require.ErrorIs(t, errDup, nav.ErrInvalid)

	_, errItem := nav.Parse([]byte("groups:\n  - name: A\n    items:\n      - label: X\n"))
	require.ErrorIs(t, errItem, nav.ErrInvalid)

	_, errYAML := nav.Parse([]byte("groups: [\n"))
	require.ErrorIs(t, errYAML, nav.ErrDecode)
}
