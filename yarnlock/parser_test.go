package yarnlock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireSyntaxErr asserts err is a *SyntaxError of the given kind.
func requireSyntaxErr(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	require.Error(t, err)
	var serr *SyntaxError
	require.True(t, errors.As(err, &serr), "want *SyntaxError, got %T: %v", err, err)
	assert.Equal(t, kind, serr.Kind, "error: %v", err)
}

func singleBlock(t *testing.T, src string) *Block {
	t.Helper()
	entries, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, EntryBlock, entries[0].Kind)
	return entries[0].Block
}

func TestParseEmpty(t *testing.T) {
	entries, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseCommentOnly(t *testing.T) {
	entries, err := Parse("# THIS IS AN AUTOGENERATED FILE. DO NOT EDIT THIS FILE DIRECTLY.\n")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, EntryComment, entries[0].Kind)
	assert.Equal(t, "THIS IS AN AUTOGENERATED FILE. DO NOT EDIT THIS FILE DIRECTLY.", entries[0].Comment)
}

func TestParseCommentStripsHashAndSpaces(t *testing.T) {
	entries, err := Parse("#   spaced out\n")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "spaced out", entries[0].Comment)
}

func TestParseRoundTripBlock(t *testing.T) {
	b := singleBlock(t, "\"pkg@^1.0.0\":\n  version \"1.0.0\"\n  resolved \"http://x\"\n")
	assert.Equal(t, []PackageRef{{Name: "pkg", Version: "^1.0.0"}}, b.Packages)
	assert.Equal(t, "1.0.0", b.Version)
	assert.Equal(t, "http://x", b.Resolved)
	assert.Empty(t, b.Integrity)
	assert.Empty(t, b.Dependencies)
}

func TestParseBareHeader(t *testing.T) {
	b := singleBlock(t, "lodash@^4.17.21:\n  version \"4.17.21\"\n")
	assert.Equal(t, []PackageRef{{Name: "lodash", Version: "^4.17.21"}}, b.Packages)
	assert.Equal(t, "4.17.21", b.Version)
}

func TestParseScopedQuotedHeader(t *testing.T) {
	// The separator search must skip the leading '@' of a scoped name.
	b := singleBlock(t, "\"@scope/pkg@^2.0.0\":\n  version \"2.1.0\"\n")
	assert.Equal(t, []PackageRef{{Name: "@scope/pkg", Version: "^2.0.0"}}, b.Packages)
}

func TestParseMultipleSelectors(t *testing.T) {
	b := singleBlock(t, "a@1.0.0, a@^1.0.0:\n  version \"1.0.0\"\n  resolved \"http://a\"\n")
	require.Len(t, b.Packages, 2)
	assert.Equal(t, PackageRef{Name: "a", Version: "1.0.0"}, b.Packages[0])
	assert.Equal(t, PackageRef{Name: "a", Version: "^1.0.0"}, b.Packages[1])
	assert.Equal(t, "1.0.0", b.Version)
	assert.Equal(t, "http://a", b.Resolved)
	assert.NotEmpty(t, b.Packages[0].Name)
}

func TestParseDependencies(t *testing.T) {
	src := "a@1.0.0:\n" +
		"  version \"1.0.0\"\n" +
		"  dependencies:\n" +
		"    b \"^2.0.0\"\n" +
		"    \"@scope/c\" \"~3.0.0\"\n"
	b := singleBlock(t, src)
	assert.Equal(t, []PackageRef{
		{Name: "b", Version: "^2.0.0"},
		{Name: "@scope/c", Version: "~3.0.0"},
	}, b.Dependencies)

	rng, ok := b.Dependency("b")
	assert.True(t, ok)
	assert.Equal(t, "^2.0.0", rng)
	_, ok = b.Dependency("missing")
	assert.False(t, ok)
}

func TestParseIndentationHandOff(t *testing.T) {
	// The indentation that terminates the dependency sub-list belongs to
	// the next sibling key and must not be re-measured: integrity here is
	// a sibling of dependencies, not a dependency.
	src := "a@1.0.0:\n" +
		"  version \"1.0.0\"\n" +
		"  dependencies:\n" +
		"    b \"^2.0.0\"\n" +
		"  integrity sha1-xxx\n"
	b := singleBlock(t, src)
	assert.Equal(t, []PackageRef{{Name: "b", Version: "^2.0.0"}}, b.Dependencies)
	assert.Equal(t, "sha1-xxx", b.Integrity)
	assert.Equal(t, "1.0.0", b.Version)
}

func TestParseOptionalDependencies(t *testing.T) {
	src := "fsevents@^1.2.7:\n" +
		"  version \"1.2.9\"\n" +
		"  optionalDependencies:\n" +
		"    nan \"^2.12.1\"\n" +
		"  resolved \"https://registry.yarnpkg.com/fsevents\"\n"
	b := singleBlock(t, src)
	assert.Equal(t, []PackageRef{{Name: "nan", Version: "^2.12.1"}}, b.OptionalDependencies)
	assert.Empty(t, b.Dependencies)
	assert.Equal(t, "https://registry.yarnpkg.com/fsevents", b.Resolved)
}

func TestParseUnknownKeySkipped(t *testing.T) {
	src := "a@1.0.0:\n" +
		"  foo bar\n" +
		"  version \"1.0.0\"\n" +
		"  languageName \"node\"\n"
	b := singleBlock(t, src)
	assert.Equal(t, "1.0.0", b.Version)
	assert.Empty(t, b.Resolved)
}

func TestParseWiderIndentation(t *testing.T) {
	// Indentation width is not fixed, only consistent and strictly
	// increasing for nested content.
	src := "a@1.0.0:\n" +
		"    version \"1.0.0\"\n" +
		"    dependencies:\n" +
		"        b \"^2.0.0\"\n" +
		"    integrity sha1-yyy\n"
	b := singleBlock(t, src)
	assert.Equal(t, "1.0.0", b.Version)
	assert.Equal(t, []PackageRef{{Name: "b", Version: "^2.0.0"}}, b.Dependencies)
	assert.Equal(t, "sha1-yyy", b.Integrity)
}

func TestParseMultipleEntries(t *testing.T) {
	src := "# yarn lockfile v1\n" +
		"\n" +
		"a@1.0.0:\n" +
		"  version \"1.0.0\"\n" +
		"  resolved \"http://a\"\n" +
		"\n" +
		"b@^2.0.0:\n" +
		"  version \"2.3.4\"\n" +
		"  resolved \"http://b\"\n" +
		"  dependencies:\n" +
		"    a \"1.0.0\"\n"
	entries, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, EntryComment, entries[0].Kind)
	assert.Equal(t, "yarn lockfile v1", entries[0].Comment)
	assert.Equal(t, EntryBlock, entries[1].Kind)
	assert.Equal(t, "a", entries[1].Block.Packages[0].Name)
	assert.Equal(t, EntryBlock, entries[2].Kind)
	assert.Equal(t, []PackageRef{{Name: "a", Version: "1.0.0"}}, entries[2].Block.Dependencies)
}

func TestParserNextStreaming(t *testing.T) {
	p := NewParser("# head\na@1:\n  version \"1\"\n")

	e, err := p.Next()
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, EntryComment, e.Kind)

	e, err = p.Next()
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, EntryBlock, e.Kind)

	// Exhausted stream keeps returning (nil, nil).
	e, err = p.Next()
	require.NoError(t, err)
	assert.Nil(t, e)
	e, err = p.Next()
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestParseUnterminatedHeader(t *testing.T) {
	_, err := Parse("a@1.0.0")
	requireSyntaxErr(t, err, ErrUnexpectedEOF)
}

func TestParseHeaderMissingSeparator(t *testing.T) {
	_, err := Parse("\"pkg1.0.0\":\n  version \"1\"\n")
	requireSyntaxErr(t, err, ErrInvalidPackageVersion)
}

func TestParseScopeOnlySelector(t *testing.T) {
	// A lone leading '@' is the scope marker, not a separator.
	_, err := Parse("\"@scope/pkg\":\n  version \"1\"\n")
	requireSyntaxErr(t, err, ErrInvalidPackageVersion)
}

func TestParseBareNameWithoutRange(t *testing.T) {
	_, err := Parse("pkg:\n  version \"1\"\n")
	requireSyntaxErr(t, err, ErrUnexpectedToken)
}

func TestParseEmptyHeader(t *testing.T) {
	_, err := Parse(":\n  version \"1\"\n")
	requireSyntaxErr(t, err, ErrUnexpectedToken)
}

func TestParseUnterminatedString(t *testing.T) {
	_, err := Parse("\"pkg@^1.0.0")
	requireSyntaxErr(t, err, ErrInvalidString)
}

func TestParseMissingSpaceAfterKey(t *testing.T) {
	_, err := Parse("a@1:\n  version:\n")
	requireSyntaxErr(t, err, ErrExpectedSpace)
}

func TestParseMissingColonAfterDependencies(t *testing.T) {
	_, err := Parse("a@1:\n  dependencies b\n")
	requireSyntaxErr(t, err, ErrExpectedColon)
}

func TestParseErrorCarriesPosition(t *testing.T) {
	_, err := Parse("a@1:\n  version:\n")
	var serr *SyntaxError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 2, serr.Pos.Line)
}

func TestParseRealWorldFragment(t *testing.T) {
	src := `# THIS IS AN AUTOGENERATED FILE. DO NOT EDIT THIS FILE DIRECTLY.
# yarn lockfile v1


"@babel/code-frame@^7.0.0", "@babel/code-frame@^7.10.4":
  version "7.10.4"
  resolved "https://registry.yarnpkg.com/@babel/code-frame/-/code-frame-7.10.4.tgz#168da1a36e90da68ae8d49c0f1b48c7c6249213a"
  integrity sha512-vG6SvB6oYEhvgisZNFRmRCUkLz11c7rp+tbNTynGqc6mS1d5ATd/sGyV6W0KZZnXRKMTzZDRgQT3Ou9jhpAfUg==
  dependencies:
    "@babel/highlight" "^7.10.4"

ansi-styles@^3.2.1:
  version "3.2.1"
  resolved "https://registry.yarnpkg.com/ansi-styles/-/ansi-styles-3.2.1.tgz#41fbb20243e50b12be0f04b8dedbf07520ce841d"
  integrity sha512-VT0ZI6kZRdTh8YyJw3SMbYm/u+NqfsAxEpWO0Pf9sq8/e94WxxOpPKx9FR1FlyCtOVDNOQ+8ntlqFxiRc+r5qA==
  dependencies:
    color-convert "^1.9.0"
`
	entries, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, EntryComment, entries[0].Kind)
	assert.Equal(t, EntryComment, entries[1].Kind)
	assert.Equal(t, "yarn lockfile v1", entries[1].Comment)

	babel := entries[2].Block
	require.Len(t, babel.Packages, 2)
	assert.Equal(t, PackageRef{Name: "@babel/code-frame", Version: "^7.0.0"}, babel.Packages[0])
	assert.Equal(t, PackageRef{Name: "@babel/code-frame", Version: "^7.10.4"}, babel.Packages[1])
	assert.Equal(t, "7.10.4", babel.Version)
	assert.Contains(t, babel.Resolved, "code-frame-7.10.4.tgz")
	assert.Contains(t, babel.Integrity, "sha512-")
	assert.Equal(t, []PackageRef{{Name: "@babel/highlight", Version: "^7.10.4"}}, babel.Dependencies)

	ansi := entries[3].Block
	assert.Equal(t, "ansi-styles", ansi.Packages[0].Name)
	assert.Equal(t, "3.2.1", ansi.Version)
	assert.Equal(t, []PackageRef{{Name: "color-convert", Version: "^1.9.0"}}, ansi.Dependencies)
}

func TestParseFieldsAreViews(t *testing.T) {
	// Parsed fields borrow from the source buffer; no mutation occurs.
	src := "leftpad@1.3.0:\n  version \"1.3.0\"\n"
	b := singleBlock(t, src)
	assert.Equal(t, src[0:7], b.Packages[0].Name)
	assert.Equal(t, "leftpad@1.3.0", b.Packages[0].String())
}
