// pkg/artifact/archive.go
package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	arMagic      = "!<arch>\n"
	arThinMagic  = "!<thin>\n"
	arHeaderSize = 60
	arFileMagic  = "`\n"
)

// ErrMalformedArchive indicates a static archive whose headers cannot be read
var ErrMalformedArchive = errors.New("malformed ar archive")

// member is one object file inside a static archive
type member struct {
	Name string
	Data []byte
}

// readMembers walks a System V/GNU or BSD ar archive and calls fn for every
// object member. Symbol tables and the GNU long-name table are consumed
// here and never passed to fn.
func readMembers(r io.Reader, fn func(member) error) error {
	magic := make([]byte, len(arMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return fmt.Errorf("%w: short global header", ErrMalformedArchive)
	}
	switch string(magic) {
	case arMagic:
	case arThinMagic:
		return fmt.Errorf("%w: thin archives are not supported", ErrMalformedArchive)
	default:
		return fmt.Errorf("%w: bad global header %q", ErrMalformedArchive, magic)
	}

	var longNames []byte
	hdr := make([]byte, arHeaderSize)
	for {
		if _, err := io.ReadFull(r, hdr); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("%w: truncated member header", ErrMalformedArchive)
		}
		if string(hdr[58:60]) != arFileMagic {
			return fmt.Errorf("%w: bad member header terminator", ErrMalformedArchive)
		}

		rawName := strings.TrimRight(string(hdr[0:16]), " ")
		size, err := strconv.ParseInt(strings.TrimSpace(string(hdr[48:58])), 10, 64)
		if err != nil || size < 0 {
			return fmt.Errorf("%w: bad size for member %q", ErrMalformedArchive, rawName)
		}

		var data bytes.Buffer
		if n, err := io.CopyN(&data, r, size); err != nil {
			return fmt.Errorf("%w: member %q has %d of %d bytes", ErrMalformedArchive, rawName, n, size)
		}
		if size%2 == 1 {
			var pad [1]byte
			if _, err := io.ReadFull(r, pad[:]); err != nil && err != io.EOF {
				return err
			}
		}

		body := data.Bytes()
		switch {
		case rawName == "/" || rawName == "/SYM64/" || strings.HasPrefix(rawName, "__.SYMDEF"):
			continue
		case rawName == "//":
			longNames = body
			continue
		}

		name, body, err := memberName(rawName, body, longNames)
		if err != nil {
			return err
		}
		if strings.HasPrefix(name, "__.SYMDEF") {
			continue
		}
		if err := fn(member{Name: name, Data: body}); err != nil {
			return err
		}
	}
}

// memberName resolves GNU "/N" and BSD "#1/N" long names
func memberName(raw string, body, longNames []byte) (string, []byte, error) {
	switch {
	case strings.HasPrefix(raw, "#1/"):
		n, err := strconv.Atoi(raw[3:])
		if err != nil || n < 0 || n > len(body) {
			return "", nil, fmt.Errorf("%w: bad BSD name %q", ErrMalformedArchive, raw)
		}
		return strings.TrimRight(string(body[:n]), "\x00"), body[n:], nil

	case len(raw) > 1 && raw[0] == '/':
		off, err := strconv.Atoi(raw[1:])
		if err != nil || off < 0 || off >= len(longNames) {
			return "", nil, fmt.Errorf("%w: bad long name reference %q", ErrMalformedArchive, raw)
		}
		name := longNames[off:]
		if i := bytes.IndexByte(name, '\n'); i >= 0 {
			name = name[:i]
		}
		return strings.TrimSuffix(string(name), "/"), body, nil
	}
	return strings.TrimSuffix(raw, "/"), body, nil
}
