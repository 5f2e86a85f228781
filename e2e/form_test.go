//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSearchSelectAndSubmit(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("--offline"))
	require.True(t, tf.Ready(), "Should render the form")
	require.True(t, tf.SeePlain("offline data"), "offline mode uses built-in lists")

	// Employee
	tf.Enter()
	require.True(t, tf.SeePlain("Jane Smith"))
	tf.Type("sarah")
	require.NoError(t, tf.WaitForE(func(s string) bool {
		plain := ansiRe.ReplaceAllString(s, "")
		return strings.Contains(plain, "1 of 7")
	}, 3*time.Second, "search should narrow the list"))
	tf.Enter()

	// Branch
	tf.Tab()
	tf.Enter()
	tf.Down()
	tf.Enter()

	// Status, notes, submit
	tf.Tab()
	tf.Tab()
	tf.Type("e2e")
	tf.Tab()
	tf.Enter()

	require.True(t, tf.OutputContainsPlain("Assignment #1001 created", 5*time.Second),
		"submit should create an assignment")
	require.True(t, tf.SeePlain("Sarah Johnson → Downtown Branch"))

	tf.Quit()
}

func TestSubmitWithoutSelection(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("--offline"))
	require.True(t, tf.Ready())

	tf.SendKeys(KeyShiftTab)
	tf.Enter()
	require.True(t, tf.SeePlain("Please select: employee, branch"))

	tf.Quit()
}

func TestPickPrintsChosenKey(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartApp("pick", "statuses", "--offline"))
	require.True(t, tf.SeePlain("Cancelled"), "picker opens with the panel shown")

	tf.Type("comp")
	tf.Enter()

	require.NoError(t, tf.WaitForE(func(s string) bool {
		plain := ansiRe.ReplaceAllString(s, "")
		return strings.Contains(plain, "completed")
	}, 3*time.Second, "pick should print the chosen key"))
}
