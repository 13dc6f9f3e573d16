package anaf

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"

	"github.com/ucarion/c14n"
)

// CanonicalDigest calculează SHA-256 peste forma canonică (C14N) a
// documentului UBL. Amprenta e stabilă la diferențe de indentare sau ordonare
// de atribute, deci servește drept cheie de deduplicare a trimiterilor.
func CanonicalDigest(xmlBytes []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(xmlBytes))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("anaf: canonicalizare XML: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
