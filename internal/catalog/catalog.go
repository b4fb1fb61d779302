// Package catalog holds the static data tables the app is seeded with:
// the donation amount set, the charity list, and the wallet descriptors.
// Everything here is immutable at runtime; accessors return copies.
package catalog

// Charity is one destination for a donation.
type Charity struct {
	ID          string
	Name        string
	Description string
	Address     string // opaque hex destination address
	Image       string // optional art reference, may be empty
}

// Wallet describes one wallet option shown in the confirmation dialog.
type Wallet struct {
	ID    string
	Name  string
	Icon  string
	Color string // lipgloss hex color
}

// amountOptions is the fixed ordered amount set, in hundredths of the
// donation unit (5 = 0.05).
var amountOptions = []int64{5, 10, 25, 50, 100, 200, 500, 1000}

var charities = []Charity{
	{
		ID:          "water-org",
		Name:        "Water.org",
		Description: "Safe water and sanitation access worldwide",
		Address:     "0x3cd751e6b0078be393132286c442345e5dc49699",
		Image:       "droplet",
	},
	{
		ID:          "givedirectly",
		Name:        "GiveDirectly",
		Description: "Direct cash transfers to people living in poverty",
		Address:     "0x750ef1d7a0b4ab1c97b7a623d7917ccd3ea8840e",
	},
	{
		ID:          "msf",
		Name:        "Doctors Without Borders",
		Description: "Emergency medical care where it is needed most",
		Address:     "0xaf4c362f4040e79b9a99a22a05dbb1b202b52a8a",
		Image:       "caduceus",
	},
	{
		ID:          "unicef",
		Name:        "UNICEF",
		Description: "Protecting the rights of every child",
		Address:     "0xa59b29d7dbc9794d1e7f45123c48b2b8d0a34636",
	},
	{
		ID:          "red-cross",
		Name:        "Red Cross",
		Description: "Disaster relief and humanitarian aid",
		Address:     "0x9b1054d24dc31a54739b6d8950af5a7dbaa56815",
		Image:       "cross",
	},
	{
		ID:          "rainforest-trust",
		Name:        "Rainforest Trust",
		Description: "Buying and protecting threatened rainforest",
		Address:     "0x5a52e96bacdabb82fd05763e25335261b270efcb",
	},
}

var wallets = []Wallet{
	{ID: "metamask", Name: "MetaMask", Icon: "🦊", Color: "#f6851b"},
	{ID: "coinbase", Name: "Coinbase Wallet", Icon: "🔵", Color: "#0052ff"},
	{ID: "walletconnect", Name: "WalletConnect", Icon: "🔗", Color: "#3b99fc"},
	{ID: "phantom", Name: "Phantom", Icon: "👻", Color: "#ab9ff2"},
}

// AmountOptions returns the fixed donation amount set in display order.
func AmountOptions() []int64 {
	out := make([]int64, len(amountOptions))
	copy(out, amountOptions)
	return out
}

// Charities returns the fixed charity list in display order.
func Charities() []Charity {
	out := make([]Charity, len(charities))
	copy(out, charities)
	return out
}

// Wallets returns the fixed wallet descriptor list in display order.
func Wallets() []Wallet {
	out := make([]Wallet, len(wallets))
	copy(out, wallets)
	return out
}

// CharityByID looks up a charity; ok is false for unknown ids.
func CharityByID(id string) (Charity, bool) {
	for _, c := range charities {
		if c.ID == id {
			return c, true
		}
	}
	return Charity{}, false
}
