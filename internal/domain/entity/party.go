package entity

// Address adresă structurată, folosită identic pentru furnizor și client.
type Address struct {
	Street     string
	Number     string
	City       string
	County     string // din nomenclatorul de județe (vezi efactura.ValidCounties)
	PostalCode string // exact 6 cifre
	Country    string
}

// Contact date de contact opționale.
type Contact struct {
	Email string
	Phone string
}

// BankAccount cont bancar al furnizorului (IBAN validat cu cifra de control).
type BankAccount struct {
	Bank string
	IBAN string
}

// CompanyDetails persoană juridică: emitentul facturii sau un client firmă.
type CompanyDetails struct {
	Name         string
	CIF          string // Cod de Identificare Fiscală, cu sau fără prefixul RO
	RegCom       string // nr. Registrul Comerțului (J40/1234/2020), opțional
	Address      Address
	Contact      *Contact
	BankAccounts []BankAccount
	VATPayer     bool
}

// PersonDetails persoană fizică: client fără cod fiscal.
// CNP-ul este opțional; dacă este prezent se validează cifra de control.
type PersonDetails struct {
	Name    string
	CNP     string
	Address Address
	Contact *Contact
}

// Party clientul facturii: firmă sau persoană fizică (uniune discriminată).
// Exact unul dintre câmpuri trebuie completat; folosiți predicatele IsCompany /
// IsPerson în loc de verificări structurale împrăștiate prin cod.
type Party struct {
	Company *CompanyDetails
	Person  *PersonDetails
}

// IsCompany raportează dacă partea este persoană juridică.
func (p Party) IsCompany() bool { return p.Company != nil }

// IsPerson raportează dacă partea este persoană fizică.
func (p Party) IsPerson() bool { return p.Person != nil }

// Name numele afișabil al părții, indiferent de tip.
func (p Party) Name() string {
	switch {
	case p.Company != nil:
		return p.Company.Name
	case p.Person != nil:
		return p.Person.Name
	}
	return ""
}

// Addr adresa părții, indiferent de tip.
func (p Party) Addr() Address {
	switch {
	case p.Company != nil:
		return p.Company.Address
	case p.Person != nil:
		return p.Person.Address
	}
	return Address{}
}
