package core

// Display labels for enum values, resolved only at the formatting boundary
// (mail templates, API responses). Core logic compares enum values directly.

var cashFlowLabels = map[CashFlow]string{
	CashFlowEntry: "Entrada",
	CashFlowExit:  "Saída",
}

var paymentTypeLabels = map[PaymentType]string{
	PaymentCreditCard: "Cartão de Crédito",
	PaymentDebit:      "Débito",
	PaymentPix:        "PIX",
	PaymentMoney:      "Dinheiro",
	PaymentTransfer:   "Transferência",
}

var cardTypeLabels = map[CardType]string{
	CardCredit:   "Crédito",
	CardDebit:    "Débito",
	CardMultiple: "Múltiplo",
}

var cardStatusLabels = map[CardStatus]string{
	CardStatusCreated: "Criado",
	CardStatusPending: "Pendente",
	CardStatusPaid:    "Pago",
}

func (c CashFlow) Label() string {
	if l, ok := cashFlowLabels[c]; ok {
		return l
	}
	return string(c)
}

func (p PaymentType) Label() string {
	if l, ok := paymentTypeLabels[p]; ok {
		return l
	}
	return string(p)
}

func (c CardType) Label() string {
	if l, ok := cardTypeLabels[c]; ok {
		return l
	}
	return string(c)
}

func (c CardStatus) Label() string {
	if l, ok := cardStatusLabels[c]; ok {
		return l
	}
	return string(c)
}
