package reop

// Kind enumerates the distinct error kinds the core can surface. Each
// kind is distinct; the core never aliases one kind as another.
type Kind int

const (
	_ Kind = iota
	InvalidFormat
	UnsupportedKey
	UnsupportedKdf
	BadPassphrase
	Mismatch
	AuthFail
	KeyringCorrupt
	NotFound
)

func (k Kind) String() string {
	switch k {
	case InvalidFormat:
		return "invalid format"
	case UnsupportedKey:
		return "unsupported key algorithm"
	case UnsupportedKdf:
		return "unsupported kdf algorithm"
	case BadPassphrase:
		return "bad passphrase"
	case Mismatch:
		return "key identifier mismatch"
	case AuthFail:
		return "authentication failed"
	case KeyringCorrupt:
		return "keyring corrupt"
	case NotFound:
		return "not found"
	default:
		return "unknown error"
	}
}

// Error is the typed error the core returns for every cryptographic or
// parsing failure. Callers distinguish kinds with errors.As and (*Error).Is,
// never by matching strings.
type Error struct {
	Kind Kind
	Err  error // optional wrapped cause, e.g. a wire.ParseError
}

func (e *Error) Error() string {
	if e.Err != nil {
		return "reop: " + e.Kind.String() + ": " + e.Err.Error()
	}
	return "reop: " + e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func newErr(kind Kind) error { return &Error{Kind: kind} }

func wrapErr(kind Kind, err error) error { return &Error{Kind: kind, Err: err} }

// Is reports whether target is an *Error of the same Kind, so callers
// can test a kind with errors.Is(err, &Error{Kind: BadPassphrase}) by
// constructing a bare &Error{Kind: k}.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
