package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"quill/internal/ast"
	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/parser"
	"quill/internal/source"
)

// DirResult is the outcome for one file of a directory run. Results
// keep the listing order regardless of which worker finished first.
type DirResult struct {
	Path    string
	FileID  source.FileID
	Root    ast.NodeID
	Builder *ast.Builder
	Bag     *diag.Bag
}

// ParseDirOptions tunes a directory run.
type ParseDirOptions struct {
	// Jobs caps worker parallelism; <= 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics caps the bag of each file.
	MaxDiagnostics int
	// OnResult, when set, is called from worker goroutines as each
	// file finishes. Callers that aggregate must synchronize.
	OnResult func(DirResult)
}

// ParseDir parses every .tw/.twee file under dir. Files that fail to
// load still get a result, carrying an IO diagnostic instead of a
// tree. The FileSet is shared across all results.
func ParseDir(ctx context.Context, dir string, opts ParseDirOptions) (*source.FileSet, []DirResult, error) {
	paths, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	// FileSet is not safe for concurrent Add, so all loading happens
	// up front on one goroutine.
	fset := source.NewFileSet()
	ids := make([]source.FileID, len(paths))
	loadErrs := make(map[int]error)
	for i, p := range paths {
		id, err := fset.Load(p)
		if err != nil {
			loadErrs[i] = err
			continue
		}
		ids[i] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(paths) {
		jobs = len(paths)
	}
	if jobs < 1 {
		jobs = 1
	}

	results := make([]DirResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i := range paths {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := parseDirFile(fset, paths[i], ids[i], loadErrs[i], opts.MaxDiagnostics)
			results[i] = res
			if opts.OnResult != nil {
				opts.OnResult(res)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fset, results, err
	}
	return fset, results, nil
}

func parseDirFile(fset *source.FileSet, path string, id source.FileID, loadErr error, maxDiagnostics int) DirResult {
	bag := newBag(maxDiagnostics)
	if loadErr != nil {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.IOReadFailed,
			Message:  loadErr.Error(),
		})
		return DirResult{Path: path, Bag: bag}
	}

	file := fset.Get(id)
	tree := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	builder := ast.NewBuilder(ast.Hints{Nodes: uint(len(file.Content)/8 + 16)})
	res, err := parser.Parse(fset, tree, builder, parser.Options{MaxDiagnostics: maxDiagnostics})
	if err != nil {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.UnknownCode,
			Message:  err.Error(),
		})
		return DirResult{Path: path, FileID: id, Bag: bag}
	}
	bag.Merge(res.Bag)
	bag.Sort()

	return DirResult{
		Path:    path,
		FileID:  id,
		Root:    res.Root,
		Builder: builder,
		Bag:     bag,
	}
}

// ListSourceFiles walks dir and returns twee sources sorted by path.
func ListSourceFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".tw", ".twee":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
