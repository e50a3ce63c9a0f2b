package sqlite

import (
	"encoding/hex"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/medibot"
)

// fieldSeparator joins content fields before hashing so that shifting text
// between adjacent fields changes the hash.
const fieldSeparator = "\x1f"

// hashDoctor computes the xxHash of a doctor's content fields and returns
// it as a hex string. The auto-assigned ID is not part of the content.
func hashDoctor(d *medibot.Doctor) string {
	h := xxhash.Sum64String(strings.Join([]string{
		d.IdentityNumber,
		d.Name,
		d.Symptoms,
		d.Specialization,
		d.Contact,
		d.Email,
		d.HospitalName,
		d.HospitalLocation,
	}, fieldSeparator))
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}
