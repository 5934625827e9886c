package model

type CommonParam struct {
	Operator     string
	OperatorName string
}

type CommonParamInterface interface {
	SetOperator(op string)
	SetOperatorName(name string)
}

func (p *CommonParam) SetOperator(op string) {
	p.Operator = op
}

func (p *CommonParam) SetOperatorName(name string) {
	p.OperatorName = name
}
