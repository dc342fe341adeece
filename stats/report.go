package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/zintix-labs/enrichlab/spec"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// RunReport 單次 enrichment 分析的完整報告。
type RunReport struct {
	Summary *SummaryReport `json:"Summary"`
	Null    *NullReport    `json:"Null"`
	isDone  bool
}

type SummaryReport struct {
	SetName    string     `json:"SetName"`
	SetID      spec.SetID `json:"SetId"`
	Samples    int        `json:"Samples"`
	Members    int        `json:"Members"`
	NonMembers int        `json:"NonMembers"`
	Perms      int        `json:"Perms"`
	InitSeed   int64      `json:"InitSeed"`
	FinalSeed  int64      `json:"FinalSeed"`
	ES         float64    `json:"ES"`
	ESRank     int        `json:"ESRank"`
	NES        float64    `json:"NES"`
	PValue     float64    `json:"PValue"`
	PValueCI   CI         `json:"PValueCI"`
}

// NullReport null 分布統計
//
// NES 保留 trial 原始順序，方便重現與比對；
// 紀錄時不統計 pool 摘要，Done() 會一次性整理填入。
type NullReport struct {
	NES  []float64   `json:"NES"`
	Pool NullSummary `json:"Pool"`

	dist *NullDist
	sig  Significance
}

// NewRunReport 組裝尚未定稿的報告。呼叫 Done() 後才能輸出。
func NewRunReport(sum *SummaryReport, nullNES []float64, dist *NullDist) *RunReport {
	return &RunReport{
		Summary: sum,
		Null:    &NullReport{NES: nullNES, dist: dist},
	}
}

// ============================================================
// ** 公開方法 **
// ============================================================

// Done 將累積的 null 分布轉換為最終統計結果並鎖定 isDone 標記。
//
// 熱路徑只收集原始 ES / NES 值，pool 摘要與顯著性估計
// 在這裡一次性計算。
func (r *RunReport) Done() {
	if r.isDone {
		return
	}
	if r.Null != nil && r.Null.dist != nil {
		r.Null.Pool = SummarizeNull(r.Null.dist)
	}
	if r.Summary != nil && r.Null != nil {
		r.Null.sig = EstimateSignificance(r.Summary.NES, r.Null.NES, 0.95)
		r.Summary.PValue = r.Null.sig.PValue.Hat
		r.Summary.PValueCI = r.Null.sig.PValue.CI
	}
	r.isDone = true
}

// Sig 回傳顯著性估計（Done 之後才有內容）。
func (r *RunReport) Sig() Significance {
	r.Done()
	return r.Null.sig
}

func (r *RunReport) WriteWith(w io.Writer, rep RunReportRender) error {
	r.Done()
	return rep.Write(w, r)
}

// StdOut 以對齊表格輸出摘要。
func (r *RunReport) StdOut() {
	r.Done()
	sk, sm := r.fmtBasic()
	str := fmtTable(r.Summary.SetName, sk, sm)
	fmt.Println(str)
}

// ============================================================
// ** 內部方法 **
// ============================================================

func (r *RunReport) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	s := r.Summary
	basic := map[string]string{
		"Set Name":    s.SetName,
		"Set ID":      fmt.Sprintf("%d", s.SetID),
		"Samples":     p.Sprintf("%d", s.Samples),
		"Members":     p.Sprintf("%d / %d", s.Members, s.NonMembers),
		"Perms":       p.Sprintf("%d", s.Perms),
		"ES":          p.Sprintf("%.6f", s.ES),
		"ES Rank":     p.Sprintf("%d", s.ESRank),
		"NES":         p.Sprintf("%.6f", s.NES),
		"p-value":     p.Sprintf("%.4f", s.PValue),
		"p 95% CI":    p.Sprintf("[%.4f, %.4f]", s.PValueCI.Lo, s.PValueCI.Hi),
		"Init Seed":   p.Sprintf("%d", s.InitSeed),
		"Final Seed":  p.Sprintf("%d", s.FinalSeed),
		"Null +pool":  p.Sprintf("%d", r.Null.Pool.Pos.N),
		"Null -pool":  p.Sprintf("%d", r.Null.Pool.Neg.N),
	}
	keys := []string{"Set Name", "Set ID", "Samples", "Members", "Perms", "ES", "ES Rank", "NES", "p-value", "p 95% CI", "Init Seed", "Final Seed", "Null +pool", "Null -pool"}
	return keys, basic
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	fmtStr := top
	fmtStr += p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right))
	fmtStr += divider
	for _, k := range keys {
		fmtStr += p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k])))
	}
	fmtStr += divider

	return fmtStr
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
