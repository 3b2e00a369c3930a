package texmath

// greekLetters maps Greek-letter control sequences to their unicode
// forms.
var greekLetters = map[string]string{
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ",
	"epsilon": "ε", "varepsilon": "ϵ", "zeta": "ζ", "eta": "η",
	"theta": "θ", "vartheta": "ϑ", "iota": "ι", "kappa": "κ",
	"lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ",
	"pi": "π", "rho": "ρ", "sigma": "σ", "varsigma": "ς",
	"tau": "τ", "upsilon": "υ", "phi": "φ", "varphi": "ϕ",
	"chi": "χ", "psi": "ψ", "omega": "ω",
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ",
	"Xi": "Ξ", "Pi": "Π", "Sigma": "Σ", "Upsilon": "Υ",
	"Phi": "Φ", "Psi": "Ψ", "Omega": "Ω",
}

// operatorSymbols maps operator and relation control sequences to
// unicode.
var operatorSymbols = map[string]string{
	"times": "×", "div": "÷", "cdot": "⋅", "pm": "±", "mp": "∓",
	"leq": "≤", "le": "≤", "geq": "≥", "ge": "≥", "neq": "≠", "ne": "≠",
	"approx": "≈", "equiv": "≡", "sim": "∼", "propto": "∝",
	"infty": "∞", "partial": "∂", "nabla": "∇",
	"sum": "∑", "prod": "∏", "int": "∫", "oint": "∮",
	"cup": "∪", "cap": "∩", "subset": "⊂", "supset": "⊃",
	"subseteq": "⊆", "supseteq": "⊇", "in": "∈", "notin": "∉",
	"forall": "∀", "exists": "∃", "emptyset": "∅",
	"land": "∧", "lor": "∨", "neg": "¬", "wedge": "∧", "vee": "∨",
	"to": "→", "rightarrow": "→", "leftarrow": "←", "mapsto": "↦",
	"Rightarrow": "⇒", "Leftarrow": "⇐",
	"leftrightarrow": "↔", "Leftrightarrow": "⇔",
	"dots": "…", "ldots": "…", "cdots": "⋯", "prime": "′",
	"circ": "∘", "bullet": "•", "star": "⋆", "oplus": "⊕", "otimes": "⊗",
	"angle": "∠", "perp": "⊥", "parallel": "∥", "mid": "∣",
	"langle": "⟨", "rangle": "⟩",
	"lfloor": "⌊", "rfloor": "⌋", "lceil": "⌈", "rceil": "⌉",
	"setminus": "∖", "therefore": "∴", "because": "∵",
}

// functionNames lists control sequences rendered as upright function
// names, \sin through \gcd.
var functionNames = map[string]bool{
	"sin": true, "cos": true, "tan": true, "cot": true, "sec": true, "csc": true,
	"arcsin": true, "arccos": true, "arctan": true,
	"sinh": true, "cosh": true, "tanh": true, "coth": true,
	"log": true, "ln": true, "lg": true, "exp": true,
	"lim": true, "limsup": true, "liminf": true,
	"max": true, "min": true, "sup": true, "inf": true,
	"det": true, "dim": true, "ker": true, "deg": true, "gcd": true,
	"arg": true, "hom": true, "Pr": true,
}

// doubleStruck maps capitals to blackboard-bold letters for \mathbb.
var doubleStruck = map[rune]rune{
	'A': '𝔸', 'B': '𝔹', 'C': 'ℂ', 'D': '𝔻', 'E': '𝔼', 'F': '𝔽', 'G': '𝔾',
	'H': 'ℍ', 'I': '𝕀', 'J': '𝕁', 'K': '𝕂', 'L': '𝕃', 'M': '𝕄', 'N': 'ℕ',
	'O': '𝕆', 'P': 'ℙ', 'Q': 'ℚ', 'R': 'ℝ', 'S': '𝕊', 'T': '𝕋', 'U': '𝕌',
	'V': '𝕍', 'W': '𝕎', 'X': '𝕏', 'Y': '𝕐', 'Z': 'ℤ',
}

// superscriptRunes are the characters with dedicated superscript forms.
var superscriptRunes = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'+': '⁺', '-': '⁻', '=': '⁼', '(': '⁽', ')': '⁾',
	'n': 'ⁿ', 'i': 'ⁱ',
}

// subscriptRunes are the characters with dedicated subscript forms.
var subscriptRunes = map[rune]rune{
	'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
	'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
	'+': '₊', '-': '₋', '=': '₌', '(': '₍', ')': '₎',
	'a': 'ₐ', 'e': 'ₑ', 'h': 'ₕ', 'i': 'ᵢ', 'j': 'ⱼ', 'k': 'ₖ',
	'l': 'ₗ', 'm': 'ₘ', 'n': 'ₙ', 'o': 'ₒ', 'p': 'ₚ', 'r': 'ᵣ',
	's': 'ₛ', 't': 'ₜ', 'u': 'ᵤ', 'v': 'ᵥ', 'x': 'ₓ',
}

// binaryOperators get surrounding spaces in plain text output.
var binaryOperators = map[string]bool{
	"+": true, "-": true, "=": true, "<": true, ">": true,
	"×": true, "÷": true, "±": true, "∓": true,
	"≤": true, "≥": true, "≠": true, "≈": true, "≡": true,
	"∼": true, "∝": true,
	"→": true, "←": true, "⇒": true, "⇐": true, "↔": true, "⇔": true, "↦": true,
	"∈": true, "∉": true, "⊂": true, "⊃": true, "⊆": true, "⊇": true,
	"∪": true, "∩": true, "∧": true, "∨": true, "∖": true,
}

// doubleStruckString rewrites capitals to their blackboard-bold forms,
// leaving anything unmapped alone.
func doubleStruckString(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if m, ok := doubleStruck[r]; ok {
			out = append(out, m)
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
