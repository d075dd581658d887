package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetVersion(t *testing.T) {
	orig := version
	t.Cleanup(func() { SetVersion(orig) })

	SetVersion("1.2.3 (commit: abc, built: today)")

	require.Equal(t, "1.2.3 (commit: abc, built: today)", rootCmd.Version)
}

func TestRootCmd_AcceptsAtMostOneFile(t *testing.T) {
	require.NoError(t, rootCmd.Args(rootCmd, []string{}))
	require.NoError(t, rootCmd.Args(rootCmd, []string{"a.py"}))
	require.Error(t, rootCmd.Args(rootCmd, []string{"a.py", "b.py"}))
}

func TestRootCmd_Flags(t *testing.T) {
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("debug"))
	require.NotNil(t, rootCmd.Flags().Lookup("trace"))
	require.NotNil(t, rootCmd.Flags().Lookup("large-file-mode"))
	require.NotNil(t, rootCmd.Flags().Lookup("language"))
}
