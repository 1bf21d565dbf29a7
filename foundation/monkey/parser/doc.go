// Package parser implements a precedence-climbing (Pratt) parser for Monkey.
//
// The parser keeps the current and the next token. Each statement is parsed
// by its own function that returns either a node or a diagnostic; ParseProgram
// collects the diagnostics and resumes at the next token, so a single run
// reports every failing statement:
//
//	p := parser.New(lexer.New("let = 5; let y 10;"))
//	_, err := p.ParseProgram()
//	var errs parser.Errors
//	if errors.As(err, &errs) {
//		for _, e := range errs {
//			fmt.Println(e) // 1:5: expect token identifier, but received =
//		}
//	}
//
// Grouping with parentheses and call expressions are not part of the grammar.
package parser
