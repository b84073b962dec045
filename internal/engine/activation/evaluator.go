package activation

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports"
)

const (
	profilesDir       = "profiles"
	parentProfilesDir = "parentProfiles"
	typePrefix        = "type-"
	javaTypePrefix    = "type-java-"
)

// Tracef receives the evaluation trace. A nil Tracef disables tracing.
type Tracef func(format string, args ...any)

// Evaluator interprets activation scripts.
//
// The grammar is keyword(args) where keyword is matched case-insensitively,
// "(" is the first opening parenthesis of the script and ")" is the last
// closing one.
type Evaluator struct {
	fs       ports.FileSystem
	resolver *Resolver
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(fs ports.FileSystem, resolver *Resolver) *Evaluator {
	return &Evaluator{fs: fs, resolver: resolver}
}

// Evaluation is the outcome of evaluating one script.
type Evaluation struct {
	Active bool
	// Dependencies are the facts the outcome relied upon, in check order.
	Dependencies []domain.Dependency
}

// Evaluate runs script for profile against ctx. Problems are reported to
// problems and make the affected predicate false.
func (e *Evaluator) Evaluate(
	profile *domain.Profile,
	ctx *domain.Context,
	problems ports.ProblemSink,
	script string,
	trace Tracef,
) Evaluation {
	run := &evaluation{
		Evaluator: e,
		profile:   profile,
		ctx:       ctx,
		problems:  problems,
		location:  profile.ScriptLocation(),
		trace:     trace,
	}
	active := run.eval(script)
	return Evaluation{Active: active, Dependencies: run.deps}
}

type evaluation struct {
	*Evaluator
	profile  *domain.Profile
	ctx      *domain.Context
	problems ports.ProblemSink
	location domain.Location
	trace    Tracef
	deps     []domain.Dependency
}

func (r *evaluation) tracef(format string, args ...any) {
	if r.trace != nil {
		r.trace(format, args...)
	}
}

func (r *evaluation) report(severity domain.Severity, err error, msg string) {
	r.problems.Add(domain.Problem{
		Severity:  severity,
		ProfileID: r.profile.ID,
		Message:   msg,
		Location:  r.location,
		Err:       err,
	})
}

func (r *evaluation) depend(deps ...domain.Dependency) {
	r.deps = append(r.deps, deps...)
}

func (r *evaluation) eval(script string) bool {
	r.tracef("evaluate(%s)", script)

	open := strings.IndexByte(script, '(')
	closing := strings.LastIndexByte(script, ')')
	if open < 0 || closing < open {
		r.report(domain.SeverityError, domain.ErrMalformedScript,
			"Unable to parse script when activating the profile "+r.profile.ID)
		return false
	}

	keyword := strings.TrimSpace(script[:open])
	args := strings.TrimSpace(script[open+1 : closing])
	r.tracef("keyword |%s| -> |%s|", keyword, args)

	switch strings.ToLower(keyword) {
	case "or":
		return r.or(args)
	case "and":
		return r.and(args)
	case "not":
		result := !r.eval(args)
		r.tracef("not -> %t", result)
		return result
	case "file":
		return r.file(args, true)
	case "missing":
		return r.file(args, false)
	case "property":
		return r.property(args)
	case "type":
		return r.typ(args)
	case "jdk":
		return r.jdk(args)
	case "profile":
		return r.profileFile(args)
	default:
		r.report(domain.SeverityError, domain.ErrUnknownKeyword,
			fmt.Sprintf("Unrecognized script keyword %q when activating the profile %s", keyword, r.profile.ID))
		return false
	}
}

func (r *evaluation) or(args string) bool {
	terms := SplitArgs(args)
	r.tracef("split %s -> %q", args, terms)
	for _, term := range terms {
		if r.eval(term) {
			r.tracef("or child returned true, so or is true")
			return true
		}
	}
	r.tracef("no or child returned true, so or is false")
	return false
}

func (r *evaluation) and(args string) bool {
	terms := SplitArgs(args)
	r.tracef("split %s -> %q", args, terms)
	for _, term := range terms {
		if !r.eval(term) {
			r.tracef("and child returned false, so and is false")
			return false
		}
	}
	r.tracef("no and child returned false, so and is true")
	return true
}

// resolve resolves a path template. On failure it reports a problem and pins
// an AlwaysFails dependency.
func (r *evaluation) resolve(template string) (string, bool) {
	path, deps, err := r.resolver.Resolve(template, r.ctx)
	if err != nil {
		r.depend(domain.AlwaysFails{})
		if errors.Is(err, domain.ErrBasedirUnavailable) {
			r.report(domain.SeverityWarning, err,
				fmt.Sprintf("Cannot resolve %s for profile %s without a project directory", template, r.profile.ID))
		} else {
			r.report(domain.SeverityError, err,
				fmt.Sprintf("Failed to interpolate file location %s for profile %s: %v", template, r.profile.ID, err))
		}
		return "", false
	}
	r.depend(deps...)
	return path, true
}

func (r *evaluation) file(template string, wantExists bool) bool {
	path, ok := r.resolve(template)
	if !ok {
		return false
	}
	return r.checkFile(path, wantExists)
}

func (r *evaluation) checkFile(path string, wantExists bool) bool {
	exists := r.fs.Exists(path)
	r.depend(domain.FileExistence{Path: path, Existed: exists})
	r.tracef("file %s exists=%t", path, exists)
	return exists == wantExists
}

func (r *evaluation) property(args string) bool {
	key, value, hasValue := strings.Cut(args, "=")
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	negate := false
	if rest, ok := strings.CutPrefix(key, "!"); ok {
		negate = true
		key = strings.TrimSpace(rest)
	}

	p := domain.NewPropertyPredicate(r.ctx, key, value, hasValue, negate)
	r.depend(p)
	r.tracef("%s", p)
	return p.Outcome
}

func (r *evaluation) typ(name string) bool {
	dir, ok := r.resolve(profilesDir)
	if !ok {
		return false
	}
	prefix := typePrefix + name
	if !r.fs.Exists(dir) {
		r.depend(domain.FileExistence{Path: dir, Existed: false})
		r.tracef("profiles dir %s does not exist, so false", dir)
		return false
	}

	entries, ok := r.listProfiles(dir)
	if !ok {
		return false
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry, prefix) {
			r.depend(domain.FileExistence{Path: filepath.Join(dir, entry), Existed: true})
			r.tracef("type %s exists, so true", entry)
			return true
		}
	}
	r.depend(domain.NoFileWithPrefix{Dir: dir, Prefix: prefix})
	r.tracef("no %s* in %s, so false", prefix, dir)
	return false
}

func (r *evaluation) jdk(expr string) bool {
	cmp, err := parseVersionComparison(expr)
	if err != nil {
		r.report(domain.SeverityError, err,
			fmt.Sprintf("Invalid jdk comparison %q when activating the profile %s", expr, r.profile.ID))
		return false
	}

	dir, ok := r.resolve(profilesDir)
	if !ok {
		return false
	}
	if !r.fs.Exists(dir) {
		r.depend(domain.FileExistence{Path: dir, Existed: false})
		r.tracef("profiles dir %s does not exist, so false", dir)
		return false
	}

	entries, ok := r.listProfiles(dir)
	if !ok {
		return false
	}
	match, version := "", -1
	for _, entry := range entries {
		if v, ok := javaVersion(entry); ok {
			match, version = entry, v
		}
	}
	if match == "" {
		r.depend(domain.NoFileWithPrefix{Dir: dir, Prefix: javaTypePrefix})
		r.tracef("no %s<version> in %s, so false", javaTypePrefix, dir)
		return false
	}

	r.depend(domain.FileExistence{Path: filepath.Join(dir, match), Existed: true})
	result := cmp.matches(version)
	r.tracef("jdk %d %s %d -> %t", version, cmp.op, cmp.version, result)
	return result
}

// profileFile checks profiles/<name> in the project directory, then
// parentProfiles/<name> in every strict ancestor up to the filesystem root.
// Every candidate path is interpolated.
func (r *evaluation) profileFile(name string) bool {
	path, ok := r.resolve(profilesDir + "/" + name)
	if !ok {
		return false
	}
	if r.checkFile(path, true) {
		r.tracef("profiles/%s exists, so true", name)
		return true
	}
	if !r.ctx.HasProjectDir() {
		return false
	}

	dir := filepath.Dir(r.ctx.ProjectDir())
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		path, ok := r.resolve(filepath.Join(dir, parentProfilesDir) + "/" + name)
		if !ok {
			return false
		}
		if r.checkFile(path, true) {
			r.tracef("%s exists, so true", path)
			return true
		}
		dir = parent
	}
	r.tracef("no profiles found, so false")
	return false
}

// listProfiles lists the profiles directory. A profiles path that exists but
// cannot be listed is reported and pins AlwaysFails.
func (r *evaluation) listProfiles(dir string) ([]string, bool) {
	entries, err := r.fs.ListDir(dir)
	if err != nil {
		r.depend(domain.AlwaysFails{})
		r.report(domain.SeverityWarning, err,
			fmt.Sprintf("Cannot list %s for profile %s", dir, r.profile.ID))
		return nil, false
	}
	return entries, true
}

func javaVersion(entry string) (int, bool) {
	digits, ok := strings.CutPrefix(entry, javaTypePrefix)
	if !ok || digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return v, true
}
