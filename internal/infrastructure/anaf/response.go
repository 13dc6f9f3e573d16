package anaf

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/pmt-online/magazin-api/internal/domain/entity"
)

// UploadResult rezultatul interpretat al unui răspuns de încărcare SPV.
type UploadResult struct {
	UploadID string   // index_incarcare alocat de ANAF
	Status   string   // entity.AnafStatusUploaded sau entity.AnafStatusRejected
	Errors   []string // mesajele de eroare, dacă există
}

// ParseUploadResponse interpretează XML-ul întors de SPV la încărcarea unei
// facturi: <header ExecutionStatus="0" index_incarcare="..."/> la succes,
// respectiv <Errors errorMessage="..."/> imbricate la respingere.
func ParseUploadResponse(xmlBytes []byte) (*UploadResult, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlBytes); err != nil {
		return nil, fmt.Errorf("anaf: răspuns de încărcare neinteligibil: %w", err)
	}
	header := doc.Root()
	if header == nil {
		return nil, fmt.Errorf("anaf: răspuns de încărcare fără element rădăcină")
	}

	result := &UploadResult{
		UploadID: header.SelectAttrValue("index_incarcare", ""),
	}
	for _, e := range header.SelectElements("Errors") {
		if msg := e.SelectAttrValue("errorMessage", ""); msg != "" {
			result.Errors = append(result.Errors, msg)
		}
	}

	if header.SelectAttrValue("ExecutionStatus", "") == "0" && len(result.Errors) == 0 {
		result.Status = entity.AnafStatusUploaded
	} else {
		result.Status = entity.AnafStatusRejected
	}
	return result, nil
}

// StatusResult starea unei trimiteri, obținută prin interogarea SPV.
type StatusResult struct {
	Status     string // una dintre constantele entity.AnafStatus*
	DownloadID string // id_descarcare, prezent când prelucrarea s-a încheiat
}

// ParseStatusResponse interpretează răspunsul de stare al unei încărcări:
// stare "ok" (validată), "nok" (respinsă) sau "in prelucrare".
func ParseStatusResponse(xmlBytes []byte) (*StatusResult, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlBytes); err != nil {
		return nil, fmt.Errorf("anaf: răspuns de stare neinteligibil: %w", err)
	}
	header := doc.Root()
	if header == nil {
		return nil, fmt.Errorf("anaf: răspuns de stare fără element rădăcină")
	}

	result := &StatusResult{
		DownloadID: header.SelectAttrValue("id_descarcare", ""),
	}
	switch strings.ToLower(header.SelectAttrValue("stare", "")) {
	case "ok":
		result.Status = entity.AnafStatusValidated
	case "nok":
		result.Status = entity.AnafStatusRejected
	default:
		result.Status = entity.AnafStatusUploaded // încă în prelucrare
	}
	return result, nil
}
