// Package bcerr defines the error taxonomy shared across the codec
// packages. Error kind is an enum; its localised text lives in a single
// table here rather than being baked into each call site.
package bcerr

import "fmt"

// Kind is one of the abstract error categories a consumer can match on
// with errors.Is, independent of which layer raised it.
type Kind int

const (
	InvalidSignature Kind = iota
	UnsupportedVersion
	InvalidMagic
	InconsistentCount
	UnknownFormat
	NotFound
	MalformedName
	Io
)

func (k Kind) String() string {
	switch k {
	case InvalidSignature:
		return "InvalidSignature"
	case UnsupportedVersion:
		return "UnsupportedVersion"
	case InvalidMagic:
		return "InvalidMagic"
	case InconsistentCount:
		return "InconsistentCount"
	case UnknownFormat:
		return "UnknownFormat"
	case NotFound:
		return "NotFound"
	case MalformedName:
		return "MalformedName"
	case Io:
		return "Io"
	default:
		return "Unknown"
	}
}

// Error makes a Kind usable as an errors.Is target.
func (k Kind) Error() string { return k.String() }

// Error pairs an abstract Kind with the localised message for one
// specific condition. Sentinel values below are compared with
// errors.Is via Is, so callers can test either the sentinel or the
// coarser Kind.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is lets errors.Is(err, bcerr.UnsupportedVersion) match any *Error of
// that Kind, not just the exact sentinel.
func (e *Error) Is(target error) bool {
	if k, ok := target.(Kind); ok {
		return e.Kind == k
	}
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e == other
}

// Sentinels, one per condition named in the error taxonomy. Messages
// match the localisation table this module was distilled from.
var (
	ErrNotValidBarSignature = &Error{InvalidSignature, "Ошибка при чтении: неверная сигнатура BAR файла."}
	ErrBarNotFound          = &Error{NotFound, "Ошибка при чтении: BAR файл не найден по указанному пути."}
	ErrUnsupportedBarVersion = &Error{UnsupportedVersion, "Ошибка при чтении: текущая версия BAR файла не поддерживается. Обратитесь к разработчику."}
	ErrNotValidBarMagic     = &Error{InvalidMagic, "Ошибка при чтении: неправильный magic BAR файла."}
	ErrEntryCountMismatch   = &Error{InconsistentCount, "Ошибка при чтении: несовпадают поля file_count и root_file_count."}

	ErrNotValidDdtSignature = &Error{InvalidSignature, "Ошибка при чтении: неверная сигнатура DDT файла."}
	ErrNotValidDdtFormat    = &Error{UnknownFormat, "Ошибка при декодировании: неизвестный формат DDT файла."}

	ErrNotValidDecodedWavSignature = &Error{InvalidSignature, "Ошибка при декодировании: получена неверная сигнатура WAV файла."}

	ErrMalformedTgaName = &Error{MalformedName, "Ошибка при чтении: не удалось разобрать имя файла TGA."}
)

// Wrap annotates err with call-site context while keeping it matchable
// via errors.Is against both the sentinel and its Kind.
func Wrap(context string, err error) error {
	return fmt.Errorf("%s: %w", context, err)
}
