package vcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDiff_ModifiedFile(t *testing.T) {
	diff := `diff --git a/src/lib.rs b/src/lib.rs
index 1234567..89abcde 100644
--- a/src/lib.rs
+++ b/src/lib.rs
@@ -1,3 +1,4 @@
 fn main() {
-    println!("old");
+    println!("new");
+    println!("extra");
 }
`
	files, err := ParseDiff(diff)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "src/lib.rs", files[0].Path)
	assert.Equal(t, DiffModified, files[0].Status)
	require.Len(t, files[0].Hunks, 1)
	assert.Equal(t, 2, files[0].AddedLineCount())
	assert.Equal(t, 1, files[0].RemovedLineCount())
	assert.Equal(t, 3, files[0].ChangedLineCount())
}

func TestParseDiff_AddedFile(t *testing.T) {
	diff := `diff --git a/new.txt b/new.txt
new file mode 100644
index 0000000..1234567
--- /dev/null
+++ b/new.txt
@@ -0,0 +1,2 @@
+line one
+line two
`
	files, err := ParseDiff(diff)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, DiffAdded, files[0].Status)
	assert.Equal(t, "new.txt", files[0].Path)
	assert.Equal(t, 2, files[0].AddedLineCount())
}

func TestParseDiff_DeletedFile(t *testing.T) {
	diff := `diff --git a/gone.txt b/gone.txt
deleted file mode 100644
index 1234567..0000000
--- a/gone.txt
+++ /dev/null
@@ -1,1 +0,0 @@
-bye
`
	files, err := ParseDiff(diff)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, DiffDeleted, files[0].Status)
	assert.Equal(t, "gone.txt", files[0].Path)
}

func TestParseDiff_RenamedFile(t *testing.T) {
	diff := `diff --git a/old_name.go b/new_name.go
similarity index 100%
rename from old_name.go
rename to new_name.go
`
	files, err := ParseDiff(diff)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, DiffRenamed, files[0].Status)
	assert.Equal(t, "new_name.go", files[0].Path)
	assert.Equal(t, "old_name.go", files[0].OldPath)
}

func TestParseDiff_MultipleFiles(t *testing.T) {
	diff := `diff --git a/a.go b/a.go
index 1111111..2222222 100644
--- a/a.go
+++ b/a.go
@@ -1,1 +1,1 @@
-old a
+new a
diff --git a/b.go b/b.go
index 3333333..4444444 100644
--- a/b.go
+++ b/b.go
@@ -1,1 +1,1 @@
-old b
+new b
`
	files, err := ParseDiff(diff)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.go", files[0].Path)
	assert.Equal(t, "b.go", files[1].Path)
}

func TestParseDiff_EmptyInput(t *testing.T) {
	files, err := ParseDiff("")
	require.NoError(t, err)
	assert.Empty(t, files)
}
