package models

// Transaction documents live in the "transactions" collection, keyed by
// UID. This service only ever deletes them; writes happen elsewhere.
type Transaction struct {
	UID             string  `firestore:"-" json:"uid,omitempty"` // document id
	AccountName     string  `firestore:"account_name,omitempty" json:"account_name,omitempty"`
	AccountNumber   string  `firestore:"account_number" json:"account_number"`
	TransactionDate string  `firestore:"transaction_date" json:"transaction_date"`
	Label           string  `firestore:"label" json:"label"`
	Categorie       string  `firestore:"categorie" json:"categorie"`
	SubCategorie    string  `firestore:"sub_categorie" json:"sub_categorie"`
	Amount          float64 `firestore:"amount" json:"amount"`
	UserUID         string  `firestore:"user_uid,omitempty" json:"user_uid,omitempty"`
}
