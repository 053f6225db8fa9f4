package compare

// DefaultAssumptions lists the modeling assumptions rendered in detailed outputs
var DefaultAssumptions = []string{
	"ICMS incide apenas sobre a receita de produtos, nos segmentos Comércio e Indústria",
	"Encargos sobre a folha: FGTS 8% e INSS patronal 20% (Simples Nacional recolhe apenas o FGTS)",
	"Simples Nacional: alíquota única da faixa de receita sobre toda a receita, sem dedução",
	"RET: 4% sobre a receita total, mais FGTS quando selecionado",
	"Lucro Real: IRPJ e CSLL sobre receita menos custo dos produtos, podendo ser negativo",
}
