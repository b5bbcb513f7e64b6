package payments

// Method identifies how the client pays.
type Method string

const (
	MethodCard         Method = "CARD"
	MethodBankTransfer Method = "BANK_TRANSFER" // PSE-style local bank debit
	MethodWallet       Method = "WALLET"
	MethodWireTransfer Method = "WIRE_TRANSFER"
	MethodCashAtOffice Method = "CASH_AT_OFFICE"
)

// IsValid checks if the payment method is one we accept.
func (m Method) IsValid() bool {
	switch m {
	case MethodCard, MethodBankTransfer, MethodWallet, MethodWireTransfer, MethodCashAtOffice:
		return true
	}
	return false
}

// String returns the string representation of Method.
func (m Method) String() string {
	return string(m)
}

// RequiresCardDetails reports whether card fields must be present and valid.
func (m Method) RequiresCardDetails() bool {
	return m == MethodCard
}

// RequiresBankDetails reports whether local bank transfer fields are required.
func (m Method) RequiresBankDetails() bool {
	return m == MethodBankTransfer
}
