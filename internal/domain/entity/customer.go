package entity

import "time"

// Tipuri de client.
const (
	CustomerKindCompany = "company"
	CustomerKindPerson  = "person"
)

// Customer un client al magazinului, firmă sau persoană fizică.
// CIF-ul / CNP-ul se validează la introducere (pkg/fiscal), înainte să
// existe vreo factură pentru client.
type Customer struct {
	ID       string
	Kind     string // CustomerKindCompany sau CustomerKindPerson
	Name     string
	CIF      string // doar pentru firme
	RegCom   string // doar pentru firme, opțional
	CNP      string // doar pentru persoane fizice, opțional
	VATPayer bool

	Address Address
	Email   string
	Phone   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Party transformă clientul în partea corespunzătoare de pe factură
// (uniunea firmă / persoană fizică), cu datele de contact atașate.
func (c *Customer) Party() Party {
	var contact *Contact
	if c.Email != "" || c.Phone != "" {
		contact = &Contact{Email: c.Email, Phone: c.Phone}
	}
	if c.Kind == CustomerKindCompany {
		return Party{Company: &CompanyDetails{
			Name:     c.Name,
			CIF:      c.CIF,
			RegCom:   c.RegCom,
			Address:  c.Address,
			Contact:  contact,
			VATPayer: c.VATPayer,
		}}
	}
	return Party{Person: &PersonDetails{
		Name:    c.Name,
		CNP:     c.CNP,
		Address: c.Address,
		Contact: contact,
	}}
}
