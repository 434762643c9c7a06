package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/wit/internal/config"
	"github.com/keshon/wit/internal/errs"
	"github.com/keshon/wit/internal/fs"
)

const root = "/w"

func newRepo(t *testing.T) (*Repository, *fs.MemoryFS) {
	t.Helper()
	mem := fs.NewMemoryFS()
	require.NoError(t, mem.MkdirAll(root, 0o755))

	_, created, err := InitAt(mem, root)
	require.NoError(t, err)
	require.True(t, created)

	r, err := OpenAt(mem, root)
	require.NoError(t, err)
	return r, mem
}

// reopen loads the repository again from disk.
func reopen(t *testing.T, mem *fs.MemoryFS) *Repository {
	t.Helper()
	r, err := OpenAt(mem, root)
	require.NoError(t, err)
	return r
}

func write(t *testing.T, mem *fs.MemoryFS, rel, data string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, mem.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, mem.WriteFile(p, []byte(data), 0o644))
}

func read(t *testing.T, mem *fs.MemoryFS, rel string) string {
	t.Helper()
	data, err := mem.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

// commitFiles writes, stages and commits the given files.
func commitFiles(t *testing.T, r *Repository, mem *fs.MemoryFS, msg string, files map[string]string) string {
	t.Helper()
	for rel, data := range files {
		write(t, mem, rel, data)
		_, err := r.Add(filepath.Join(root, filepath.FromSlash(rel)))
		require.NoError(t, err)
	}
	c, created, err := r.Commit(msg)
	require.NoError(t, err)
	require.True(t, created, "commit %q should be created", msg)
	return c.ID
}

func TestInitLayout(t *testing.T) {
	r, mem := newRepo(t)

	assert.True(t, mem.IsDir(r.Config.ImagesDir()))
	assert.True(t, mem.IsDir(r.Config.StagingDir()))
	assert.Equal(t, "HEAD=None\nmaster=None\n", read(t, mem, ".wit/references.txt"))
	assert.Equal(t, config.DefaultBranch, r.ActiveBranch())
	assert.Empty(t, r.Head())

	_, created, err := InitAt(mem, root)
	assert.False(t, created)
	assert.ErrorIs(t, err, os.ErrExist)
}

func TestFindRoot(t *testing.T) {
	_, mem := newRepo(t)
	require.NoError(t, mem.MkdirAll("/w/sub/deep", 0o755))

	got, err := FindRoot(mem, "/w/sub/deep")
	require.NoError(t, err)
	assert.Equal(t, root, got)

	require.NoError(t, mem.MkdirAll("/elsewhere", 0o755))
	_, err = FindRoot(mem, "/elsewhere")
	assert.ErrorIs(t, err, errs.ErrRepositoryNotFound)

	_, err = OpenAt(mem, "/elsewhere")
	assert.ErrorIs(t, err, errs.ErrRepositoryNotFound)
}

func TestRelativeParts(t *testing.T) {
	parts, err := RelativeParts("/w/a/b/c.txt", "/w")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c.txt"}, parts)

	parts, err = RelativeParts("/w", "/w")
	require.NoError(t, err)
	assert.Empty(t, parts)

	_, err = RelativeParts("/other/x", "/w")
	assert.Error(t, err)
}

func TestOpenSurfacesCorruptReferences(t *testing.T) {
	_, mem := newRepo(t)
	write(t, mem, ".wit/references.txt", "garbage\n")

	_, err := OpenAt(mem, root)
	assert.ErrorIs(t, err, errs.ErrStorageIO)
}

func TestAddRootStagesEverythingNotIgnored(t *testing.T) {
	r, mem := newRepo(t)
	write(t, mem, "a.txt", "A")
	write(t, mem, "dir/b.txt", "B")

	staged, err := r.Add(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "dir/b.txt"}, staged)

	_, err = r.Add("/w/missing.txt")
	assert.ErrorIs(t, err, errs.ErrPathNotFound)
}

func TestCommitIdempotence(t *testing.T) {
	r, mem := newRepo(t)
	id := commitFiles(t, r, mem, "first", map[string]string{"a.txt": "A"})

	c, created, err := r.Commit("again")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Nil(t, c)
	assert.Equal(t, id, r.Head())

	// persisted
	r2 := reopen(t, mem)
	assert.Equal(t, id, r2.Head())
	assert.Equal(t, id, r2.References().Master)
}

func TestCommitWithEmptyStagingIsNoop(t *testing.T) {
	r, _ := newRepo(t)
	_, created, err := r.Commit("empty")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestCheckoutRoundTrip(t *testing.T) {
	r, mem := newRepo(t)
	c1 := commitFiles(t, r, mem, "v1", map[string]string{"a.txt": "v1"})

	_, err := r.CreateBranch("feature")
	require.NoError(t, err)
	_, err = r.Checkout("feature")
	require.NoError(t, err)

	c2 := commitFiles(t, r, mem, "v2", map[string]string{"a.txt": "v2"})
	refs := r.References()
	target, _ := refs.BranchTarget("feature")
	assert.Equal(t, c2, target, "active branch follows HEAD")
	assert.Equal(t, c1, refs.Master)

	_, err = r.Checkout("master")
	require.NoError(t, err)
	assert.Equal(t, "v1", read(t, mem, "a.txt"))
	assert.Equal(t, config.DefaultBranch, r.ActiveBranch())

	_, err = r.Checkout(c2)
	require.NoError(t, err)
	assert.Equal(t, "v2", read(t, mem, "a.txt"))
	assert.Equal(t, c2, r.Head())

	st, err := r.State()
	require.NoError(t, err)
	assert.Equal(t, Clean, st)
}

func TestCheckoutBlockedLeavesReferences(t *testing.T) {
	r, mem := newRepo(t)
	c1 := commitFiles(t, r, mem, "v1", map[string]string{"a.txt": "v1"})
	_, err := r.CreateBranch("other")
	require.NoError(t, err)

	before := read(t, mem, ".wit/references.txt")

	// staged but not committed
	write(t, mem, "a.txt", "v2")
	_, err = r.Add("/w/a.txt")
	require.NoError(t, err)

	for _, target := range []string{"master", "other", c1} {
		_, err = r.Checkout(target)
		assert.ErrorIs(t, err, errs.ErrCheckoutBlocked, target)
	}
	assert.Equal(t, before, read(t, mem, ".wit/references.txt"))
	assert.Equal(t, c1, r.Head())
	assert.Equal(t, config.DefaultBranch, r.ActiveBranch())
}

func TestCheckoutBlockedBeforeResolvingName(t *testing.T) {
	r, mem := newRepo(t)
	c1 := commitFiles(t, r, mem, "v1", map[string]string{"a.txt": "v1"})
	before := read(t, mem, ".wit/references.txt")

	write(t, mem, "a.txt", "v2")
	_, err := r.Add("/w/a.txt")
	require.NoError(t, err)

	_, err = r.Checkout("nosuchbranch")
	assert.ErrorIs(t, err, errs.ErrCheckoutBlocked)
	assert.NotErrorIs(t, err, errs.ErrNoSuchBranch)
	assert.Equal(t, before, read(t, mem, ".wit/references.txt"))
	assert.Equal(t, c1, r.Head())
	assert.Equal(t, config.DefaultBranch, r.ActiveBranch())
}

func TestCheckoutBlockedByUnstagedChanges(t *testing.T) {
	r, mem := newRepo(t)
	commitFiles(t, r, mem, "v1", map[string]string{"a.txt": "v1"})

	write(t, mem, "a.txt", "edited")
	st, err := r.State()
	require.NoError(t, err)
	assert.Equal(t, HasUnstagedChanges, st)

	_, err = r.Checkout("master")
	assert.ErrorIs(t, err, errs.ErrCheckoutBlocked)

	// untracked files do not block
	write(t, mem, "a.txt", "v1")
	write(t, mem, "new.txt", "untracked")
	_, err = r.Checkout("master")
	assert.NoError(t, err)
}

func TestCheckoutUnknownBranch(t *testing.T) {
	r, _ := newRepo(t)
	_, err := r.Checkout("nope")
	assert.ErrorIs(t, err, errs.ErrNoSuchBranch)
}

func TestDetachedCheckout(t *testing.T) {
	r, mem := newRepo(t)
	c1 := commitFiles(t, r, mem, "one", map[string]string{"a.txt": "1"})
	_, err := r.CreateBranch("side")
	require.NoError(t, err)
	c2 := commitFiles(t, r, mem, "two", map[string]string{"a.txt": "2"})

	_, err = r.Checkout(c1)
	require.NoError(t, err)

	refs := reopen(t, mem).References()
	assert.Equal(t, c1, refs.Head)
	assert.Equal(t, c2, refs.Master)
	side, _ := refs.BranchTarget("side")
	assert.Equal(t, c1, side)
	assert.Equal(t, "1", read(t, mem, "a.txt"))

	// c1 is also side's target, but the active branch is master
	assert.True(t, r.IsDetached())

	// committing while detached moves HEAD only
	c3 := commitFiles(t, r, mem, "three", map[string]string{"a.txt": "3"})
	refs = r.References()
	assert.Equal(t, c3, refs.Head)
	assert.Equal(t, c2, refs.Master)
	side, _ = refs.BranchTarget("side")
	assert.Equal(t, c1, side)
}

func TestCreateBranch(t *testing.T) {
	r, mem := newRepo(t)
	id := commitFiles(t, r, mem, "one", map[string]string{"a.txt": "1"})

	b, err := r.CreateBranch("b")
	require.NoError(t, err)
	assert.Equal(t, id, b.Target)

	refs := reopen(t, mem).References()
	target, err := refs.BranchTarget("b")
	require.NoError(t, err)
	assert.Equal(t, refs.Head, target)

	_, err = r.CreateBranch("b")
	assert.ErrorIs(t, err, errs.ErrDuplicateBranch)
	_, err = r.CreateBranch("master")
	assert.ErrorIs(t, err, errs.ErrDuplicateBranch)
	_, err = r.CreateBranch("bad name")
	assert.ErrorIs(t, err, errs.ErrInvalidBranchName)

	list := r.ListBranches()
	require.Len(t, list, 2)
	assert.Equal(t, "master", list[0].Name)
	assert.True(t, list[0].Active)
	assert.Equal(t, "b", list[1].Name)
	assert.False(t, list[1].Active)
}

// setupDiverged builds R <- A on master and R <- B on feature, with
// master checked out.
func setupDiverged(t *testing.T) (r *Repository, mem *fs.MemoryFS, rid, aid, bid string) {
	t.Helper()
	r, mem = newRepo(t)
	rid = commitFiles(t, r, mem, "R", map[string]string{"root.txt": "r"})

	_, err := r.CreateBranch("feature")
	require.NoError(t, err)
	aid = commitFiles(t, r, mem, "A", map[string]string{"a.txt": "a", "shared.txt": "from A"})

	_, err = r.Checkout("feature")
	require.NoError(t, err)
	bid = commitFiles(t, r, mem, "B", map[string]string{"b.txt": "b", "shared.txt": "from B"})

	_, err = r.Checkout("master")
	require.NoError(t, err)
	return r, mem, rid, aid, bid
}

func TestMergeCommonAncestor(t *testing.T) {
	r, mem, rid, aid, bid := setupDiverged(t)

	res, err := r.Merge("feature", "")
	require.NoError(t, err)
	assert.Equal(t, rid, res.Base)
	assert.Equal(t, []string{aid, bid}, res.Commit.ParentIDs)
	assert.Equal(t, "Merge branch 'feature'", res.Commit.Message)

	files, err := r.Commits.Files(res.Commit.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "root.txt", "shared.txt"}, files)

	snap := r.Commits.SnapshotPath(res.Commit.ID)
	data, err := mem.ReadFile(filepath.Join(snap, "shared.txt"))
	require.NoError(t, err)
	assert.Equal(t, "from B", string(data))

	// working tree follows and the repository is clean
	assert.Equal(t, "from B", read(t, mem, "shared.txt"))
	st, err := r.State()
	require.NoError(t, err)
	assert.Equal(t, Clean, st)

	refs := reopen(t, mem).References()
	assert.Equal(t, res.Commit.ID, refs.Head)
	assert.Equal(t, res.Commit.ID, refs.Master)
	feature, _ := refs.BranchTarget("feature")
	assert.Equal(t, bid, feature)
}

func TestMergeErrors(t *testing.T) {
	r, mem, _, _, _ := setupDiverged(t)

	_, err := r.Merge("nope", "")
	assert.ErrorIs(t, err, errs.ErrNoSuchBranch)

	write(t, mem, "a.txt", "dirty")
	_, err = r.Merge("feature", "")
	assert.ErrorIs(t, err, errs.ErrMergeBlocked)
	write(t, mem, "a.txt", "a")

	_, err = r.Merge("feature", "custom")
	require.NoError(t, err)
	_, err = r.Merge("feature", "")
	assert.ErrorIs(t, err, errs.ErrAlreadyUpToDate)

	empty, _ := newRepo(t)
	_, err = empty.Merge("master", "")
	assert.ErrorIs(t, err, errs.ErrNoCommits)
}

func TestEdgesAndLog(t *testing.T) {
	r, _, rid, aid, bid := setupDiverged(t)
	res, err := r.Merge("feature", "")
	require.NoError(t, err)
	mid := res.Commit.ID

	edges, err := r.Edges()
	require.NoError(t, err)
	assert.Len(t, edges, 4)
	for _, e := range edges {
		assert.Contains(t, []string{mid, aid, bid}, e.Child)
	}

	// every path from HEAD ends at a root commit
	for _, start := range []string{mid, aid, bid} {
		id, steps := start, 0
		for {
			parents, err := r.Commits.Parents(id)
			require.NoError(t, err)
			if len(parents) == 0 {
				break
			}
			id = parents[0]
			steps++
			require.Less(t, steps, 10)
		}
		assert.Equal(t, rid, id)
	}

	log, err := r.Log(0)
	require.NoError(t, err)
	require.Len(t, log, 4)
	assert.Equal(t, mid, log[0].ID)
	assert.Equal(t, rid, log[3].ID)

	log, err = r.Log(2)
	require.NoError(t, err)
	assert.Len(t, log, 2)
}

func TestStatus(t *testing.T) {
	r, mem := newRepo(t)
	commitFiles(t, r, mem, "one", map[string]string{"a.txt": "1", "b.txt": "b"})

	write(t, mem, "a.txt", "2")
	_, err := r.Add("/w/a.txt")
	require.NoError(t, err)
	write(t, mem, "b.txt", "changed")
	write(t, mem, "c.txt", "new")

	st, err := r.Status()
	require.NoError(t, err)
	assert.Equal(t, r.Head(), st.Head)
	assert.Equal(t, "master", st.Branch)
	assert.False(t, st.Detached)
	assert.Equal(t, []string{"a.txt"}, st.Staged)
	assert.Equal(t, []string{"b.txt"}, st.Unstaged)
	assert.Equal(t, []string{"c.txt"}, st.Untracked)
	assert.Equal(t, HasStagedChanges, st.State)
}

func TestDiff(t *testing.T) {
	r, mem := newRepo(t)
	commitFiles(t, r, mem, "one", map[string]string{"a.txt": "line1\nline2\n"})

	write(t, mem, "a.txt", "line1\nchanged\n")
	diffs, err := r.Diff(false)
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Equal(t, "a.txt", diffs[0].Path)
	assert.Contains(t, diffs[0].Text, "--- a/a.txt")
	assert.Contains(t, diffs[0].Text, "-line2")
	assert.Contains(t, diffs[0].Text, "+changed")

	cached, err := r.Diff(true)
	require.NoError(t, err)
	assert.Empty(t, cached)

	_, err = r.Add("/w/a.txt")
	require.NoError(t, err)
	cached, err = r.Diff(true)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Contains(t, cached[0].Text, "+changed")
}

func TestVerify(t *testing.T) {
	r, mem := newRepo(t)
	require.NoError(t, r.Verify())

	first := commitFiles(t, r, mem, "one", map[string]string{"a.txt": "1"})
	commitFiles(t, r, mem, "two", map[string]string{"a.txt": "2"})
	require.NoError(t, r.Verify())

	require.NoError(t, mem.RemoveAll(r.Commits.SnapshotPath(first)))
	require.NoError(t, mem.Remove(filepath.Join(r.Config.ImagesDir(), first+".txt")))

	err := r.Verify()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrStorageIO)
	assert.Contains(t, err.Error(), "missing parent "+first)
}

func TestVerifyUnreachableCorruptRecord(t *testing.T) {
	r, mem := newRepo(t)
	commitFiles(t, r, mem, "one", map[string]string{"a.txt": "1"})

	orphan := filepath.Join(r.Config.ImagesDir(), "0123456789abcdef0123456789abcdef.txt")
	require.NoError(t, mem.WriteFile(orphan, []byte("garbage\n"), 0o644))

	err := r.Verify()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrStorageIO)
}

func TestCommitWithUnknownActiveBranch(t *testing.T) {
	r, mem := newRepo(t)
	c1 := commitFiles(t, r, mem, "one", map[string]string{"a.txt": "1"})
	write(t, mem, ".wit/activated.txt", "ghost")
	before := read(t, mem, ".wit/references.txt")

	r = reopen(t, mem)
	write(t, mem, "a.txt", "2")
	_, err := r.Add("/w/a.txt")
	require.NoError(t, err)

	_, _, err = r.Commit("two")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrStorageIO)
	assert.ErrorIs(t, err, errs.ErrNoSuchBranch)
	assert.Equal(t, before, read(t, mem, ".wit/references.txt"))
	assert.Equal(t, c1, r.Head())

	commits, err := r.Commits.List()
	require.NoError(t, err)
	assert.Len(t, commits, 1)

	assert.ErrorIs(t, r.Verify(), errs.ErrNoSuchBranch)
}
