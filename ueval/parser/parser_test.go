package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarthome-go/ueval/ueval/uast"
)

const EXAMPLE_DIR = "../../examples/"

func FuzzParser(f *testing.F) {
	files, err := os.ReadDir(EXAMPLE_DIR)
	if err != nil {
		panic(err.Error())
	}

	for _, file := range files {
		content, err := os.ReadFile(filepath.Join(EXAMPLE_DIR, file.Name()))
		if err != nil {
			panic(err.Error())
		}
		f.Add(string(content))
	}

	f.Fuzz(func(t *testing.T, input string) {
		p := NewParser(NewLexer(input, t.Name()), t.Name())
		_, _, _ = p.Parse()
	})
}

func TestParseExamples(t *testing.T) {
	files, err := os.ReadDir(EXAMPLE_DIR)
	require.NoError(t, err)

	for _, file := range files {
		t.Run(file.Name(), func(t *testing.T) {
			content, err := os.ReadFile(filepath.Join(EXAMPLE_DIR, file.Name()))
			require.NoError(t, err)

			tree, softErrors, hardError := Parse(string(content), file.Name())
			require.Nil(t, hardError)
			require.Empty(t, softErrors)
			assert.NotEmpty(t, tree.Methods)
		})
	}
}

//
// Helpers
//

func parseMethod(t *testing.T, source string) *uast.Method {
	t.Helper()

	tree, softErrors, hardError := Parse(source, "test.java")
	require.Nil(t, hardError)
	require.Empty(t, softErrors)
	require.Len(t, tree.Methods, 1)

	return tree.Methods[0]
}

func initializer(t *testing.T, method *uast.Method, index int) uast.Expression {
	t.Helper()

	declaration, ok := method.Body.Statements[index].(*uast.DeclarationStatement)
	require.True(t, ok, "statement %d is not a declaration", index)
	require.NotNil(t, declaration.Initializer)

	return declaration.Initializer
}

// Renders an expression with explicit parentheses around every operator.
func render(expression uast.Expression) string {
	switch node := expression.(type) {
	case *uast.InfixExpression:
		return fmt.Sprintf("(%s %s %s)", render(node.Lhs), node.Operator, render(node.Rhs))
	case *uast.PrefixExpression:
		return fmt.Sprintf("(%s%s)", node.Operator, render(node.Operand))
	case *uast.PostfixExpression:
		return fmt.Sprintf("(%s%s)", render(node.Operand), node.Operator)
	case *uast.AssignExpression:
		return fmt.Sprintf("(%s %s %s)", render(node.Target), node.Operator, render(node.Rhs))
	case *uast.ConditionalExpression:
		return fmt.Sprintf("(%s ? %s : %s)", render(node.Condition), render(node.Then), render(node.Else))
	case *uast.CastExpression:
		return fmt.Sprintf("((%s) %s)", node.Type.SimpleName(), render(node.Operand))
	case *uast.GroupedExpression:
		return render(node.Inner)
	default:
		return expression.String()
	}
}

//
// Lexer
//

func TestLexerTokens(t *testing.T) {
	lexer := NewLexer(`a >>>= 0x1F + 'b' 1.5f 2L 1e3 "s\n" // comment
	/* block */ x`, "test.java")

	expected := []Token{
		{Kind: Identifier, Value: "a"},
		{Kind: UnsignedShiftRightAssign, Value: ">>>="},
		{Kind: Int, Value: "0x1F"},
		{Kind: Plus, Value: "+"},
		{Kind: Char, Value: "98"},
		{Kind: Float, Value: "1.5"},
		{Kind: Long, Value: "2"},
		{Kind: Double, Value: "1e3"},
		{Kind: String, Value: "s\n"},
		{Kind: Identifier, Value: "x"},
		{Kind: EOF, Value: "EOF"},
	}

	for _, want := range expected {
		token, err := lexer.NextToken()
		require.Nil(t, err)
		assert.Equal(t, want.Kind, token.Kind, "token `%s`", token.Value)
		assert.Equal(t, want.Value, token.Value)
	}
}

func TestLexerSpansAreInclusive(t *testing.T) {
	lexer := NewLexer("int x += 10", "test.java")

	token, err := lexer.NextToken()
	require.Nil(t, err)
	assert.EqualValues(t, 1, token.Span.Start.Column)
	assert.EqualValues(t, 3, token.Span.End.Column)

	_, err = lexer.NextToken()
	require.Nil(t, err)

	token, err = lexer.NextToken()
	require.Nil(t, err)
	assert.Equal(t, PlusAssign, token.Kind)
	assert.EqualValues(t, 7, token.Span.Start.Column)
	assert.EqualValues(t, 8, token.Span.End.Column)

	token, err = lexer.NextToken()
	require.Nil(t, err)
	assert.EqualValues(t, 10, token.Span.Start.Column)
	assert.EqualValues(t, 11, token.Span.End.Column)
	assert.Equal(t, "test.java", token.Span.Filename)
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		source  string
		message string
	}{
		{source: `"abc`, message: "String literal never closed"},
		{source: `'ab'`, message: "A character literal must contain exactly one character"},
		{source: `'\q'`, message: "Invalid escape sequence"},
		{source: `#`, message: "Illegal character: #"},
		{source: `/* open`, message: "Block comment never closed"},
		{source: `1e+`, message: "Malformed floating-point literal: missing exponent"},
	}

	for _, test := range tests {
		t.Run(test.source, func(t *testing.T) {
			lexer := NewLexer(test.source, "test.java")
			_, err := lexer.NextToken()
			require.NotNil(t, err)
			assert.Equal(t, test.message, err.Message)
		})
	}
}

//
// Expressions
//

func TestPrecedence(t *testing.T) {
	tests := []struct {
		expression string
		expected   string
	}{
		{expression: "a + b * c", expected: "(a + (b * c))"},
		{expression: "a - b - c", expected: "((a - b) - c)"},
		{expression: "a << 1 + b", expected: "(a << (1 + b))"},
		{expression: "a < b == p", expected: "((a < b) == p)"},
		{expression: "p || p && p", expected: "(p || (p && p))"},
		{expression: "a & b | c ^ a", expected: "((a & b) | (c ^ a))"},
		{expression: "p ? a : p ? b : c", expected: "(p ? a : (p ? b : c))"},
		{expression: "-a * b", expected: "((-a) * b)"},
		{expression: "(byte) a + b", expected: "(((byte) a) + b)"},
		{expression: "a++ + ++b", expected: "((a++) + (++b))"},
		{expression: "~a >>> 2", expected: "((~a) >>> 2)"},
		{expression: "(a + b) * c", expected: "((a + b) * c)"},
		{expression: "!p != p", expected: "((!p) != p)"},
	}

	for _, test := range tests {
		t.Run(test.expression, func(t *testing.T) {
			method := parseMethod(t, fmt.Sprintf(
				"void f(int a, int b, int c, boolean p) { Object r = %s; }",
				test.expression,
			))
			assert.Equal(t, test.expected, render(initializer(t, method, 0)))
		})
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	method := parseMethod(t, "void f(int a, int b) { a = b += 2; }")

	statement := method.Body.Statements[0].(*uast.ExpressionStatement)
	assert.Equal(t, "(a = (b += 2))", render(statement.Expression))
}

func TestLiterals(t *testing.T) {
	method := parseMethod(t, `void f() {
		long l = 10L;
		float f = 1.5f;
		double d = 1e3;
		char c = 'A';
		int h = 0xFFFFFFFF;
		int m = -2147483648;
		String s = "a\tb";
		boolean b = false;
		Object n = null;
	}`)

	assert.Equal(t, &uast.IntLiteralExpression{Value: 10, IsLong: true, Range: initializer(t, method, 0).Span()}, initializer(t, method, 0))

	float := initializer(t, method, 1).(*uast.FloatLiteralExpression)
	assert.True(t, float.IsFloat)
	assert.Equal(t, 1.5, float.Value)

	double := initializer(t, method, 2).(*uast.FloatLiteralExpression)
	assert.False(t, double.IsFloat)
	assert.Equal(t, 1000.0, double.Value)

	assert.Equal(t, uint16(65), initializer(t, method, 3).(*uast.CharLiteralExpression).Value)
	assert.Equal(t, int64(-1), initializer(t, method, 4).(*uast.IntLiteralExpression).Value)

	negated := initializer(t, method, 5).(*uast.PrefixExpression)
	assert.Equal(t, uast.MinusPrefixOperator, negated.Operator)
	assert.Equal(t, int64(-2147483648), negated.Operand.(*uast.IntLiteralExpression).Value)

	assert.Equal(t, "a\tb", initializer(t, method, 6).(*uast.StringLiteralExpression).Value)
	assert.False(t, initializer(t, method, 7).(*uast.BoolLiteralExpression).Value)
	assert.Equal(t, uast.NullLiteralExpressionKind, initializer(t, method, 8).Kind())
}

func TestIntLiteralOutOfRange(t *testing.T) {
	_, _, err := Parse("void f() { int x = 2147483648; }", "test.java")
	require.NotNil(t, err)
	assert.Equal(t, "Number literal `2147483648` is out of range", err.Message)
}

func TestClassLiterals(t *testing.T) {
	method := parseMethod(t, "void f() { Object a = String.class; Object b = int.class; }")

	assert.Equal(t, uast.NewReferenceType("java.lang.String"), initializer(t, method, 0).(*uast.ClassLiteralExpression).Type)
	assert.Equal(t, uast.NewPrimitiveType(uast.IntTypeKind), initializer(t, method, 1).(*uast.ClassLiteralExpression).Type)
}

func TestCasts(t *testing.T) {
	method := parseMethod(t, "void f(Object o, int x) { String s = (String) o; int y = (x) + 1; }")

	cast := initializer(t, method, 0).(*uast.CastExpression)
	assert.Equal(t, uast.NewReferenceType("java.lang.String"), cast.Type)

	// `x` is a variable, so this is a grouped expression
	assert.Equal(t, "(x + 1)", render(initializer(t, method, 1)))
}

func TestCalls(t *testing.T) {
	method := parseMethod(t, "void f(int a) { g(a, 1 + 2); h(); }")

	call := method.Body.Statements[0].(*uast.ExpressionStatement).Expression.(*uast.CallExpression)
	assert.Equal(t, "g", call.Callee.Ident())
	require.Len(t, call.Arguments, 2)
	assert.Equal(t, "(1 + 2)", render(call.Arguments[1]))

	empty := method.Body.Statements[1].(*uast.ExpressionStatement).Expression.(*uast.CallExpression)
	assert.Empty(t, empty.Arguments)
}

//
// Statements
//

func TestStatements(t *testing.T) {
	method := parseMethod(t, `int f(boolean p) {
		int x;
		if (p) x = 1;
		if (p) { x = 2; } else { x = 3; }
		while (x < 10) x++;
		;
		return x;
	}`)

	require.Len(t, method.Body.Statements, 6)

	declaration := method.Body.Statements[0].(*uast.DeclarationStatement)
	assert.Nil(t, declaration.Initializer)

	withoutElse := method.Body.Statements[1].(*uast.IfStatement)
	assert.Nil(t, withoutElse.Else)
	assert.Equal(t, uast.ExpressionStatementKind, withoutElse.Then.Kind())

	withElse := method.Body.Statements[2].(*uast.IfStatement)
	assert.Equal(t, uast.BlockStatementKind, withElse.Else.Kind())

	loop := method.Body.Statements[3].(*uast.WhileStatement)
	assert.Equal(t, "(x < 10)", render(loop.Condition))

	assert.Empty(t, method.Body.Statements[4].(*uast.Block).Statements)

	ret := method.Body.Statements[5].(*uast.ReturnStatement)
	assert.Equal(t, "x", ret.Value.String())
}

func TestBareReturn(t *testing.T) {
	method := parseMethod(t, "void f() { return; }")
	assert.Nil(t, method.Body.Statements[0].(*uast.ReturnStatement).Value)
}

func TestMethodSignature(t *testing.T) {
	tree, softErrors, err := Parse(`package a.b;

	long f(final byte x, String s, a.b.Custom c) { return 1L; }
	void g() {}`, "test.java")
	require.Nil(t, err)
	require.Empty(t, softErrors)

	assert.Equal(t, "a.b", tree.Package)
	require.Len(t, tree.Methods, 2)

	method, found := tree.Method("f")
	require.True(t, found)
	assert.Equal(t, uast.NewPrimitiveType(uast.LongTypeKind), method.ReturnType)
	require.Len(t, method.Parameters, 3)
	assert.Equal(t, uast.NewPrimitiveType(uast.ByteTypeKind), method.Parameters[0].Type)
	assert.Equal(t, uast.NewReferenceType("java.lang.String"), method.Parameters[1].Type)
	assert.Equal(t, uast.NewReferenceType("a.b.Custom"), method.Parameters[2].Type)
	assert.Equal(t, uast.ParameterVariableOrigin, method.Parameters[0].Origin)
}

//
// Name resolution
//

func TestReferencesResolveToDeclarations(t *testing.T) {
	method := parseMethod(t, "int f(int p) { int x = p; x = x + 1; return x; }")

	declaration := method.Body.Statements[0].(*uast.DeclarationStatement)
	assert.Same(t, method.Parameters[0], declaration.Initializer.(*uast.ReferenceExpression).Variable)
	assert.Equal(t, uast.LocalVariableOrigin, declaration.Variable.Origin)

	assignment := method.Body.Statements[1].(*uast.ExpressionStatement).Expression.(*uast.AssignExpression)
	assert.Same(t, declaration.Variable, assignment.Target.Variable)

	ret := method.Body.Statements[2].(*uast.ReturnStatement)
	assert.Same(t, declaration.Variable, ret.Value.(*uast.ReferenceExpression).Variable)
}

func TestUndefinedVariable(t *testing.T) {
	tree, softErrors, err := Parse("int f(int count) { int total = cout + 1; return total; }", "test.java")
	require.Nil(t, err)
	require.Len(t, softErrors, 1)

	assert.Equal(t, "Use of undefined variable `cout`", softErrors[0].Message)
	assert.Equal(t, []string{"Did you mean `count`?"}, softErrors[0].Notes)

	declaration := tree.Methods[0].Body.Statements[0].(*uast.DeclarationStatement)
	reference := declaration.Initializer.(*uast.InfixExpression).Lhs.(*uast.ReferenceExpression)
	assert.Nil(t, reference.Variable)
}

func TestBlockScopes(t *testing.T) {
	_, softErrors, err := Parse(`void f() {
		{ int a = 1; }
		{ int a = 2; }
		if (true) { int y = 1; }
		int z = y;
	}`, "test.java")
	require.Nil(t, err)
	require.Len(t, softErrors, 1)
	assert.Equal(t, "Use of undefined variable `y`", softErrors[0].Message)
}

func TestShadowingIsRejected(t *testing.T) {
	_, softErrors, err := Parse("void f(int a) { if (true) { int a = 1; } }", "test.java")
	require.Nil(t, err)
	require.Len(t, softErrors, 1)
	assert.Equal(t, "Variable `a` is already declared in this method", softErrors[0].Message)
}

func TestVariableNotVisibleInOwnInitializer(t *testing.T) {
	_, softErrors, err := Parse("void f() { int a = a + 1; }", "test.java")
	require.Nil(t, err)
	require.Len(t, softErrors, 1)
	assert.Equal(t, "Use of undefined variable `a`", softErrors[0].Message)
}

//
// Enums
//

func TestEnumsMayBeUsedBeforeDeclaration(t *testing.T) {
	tree, softErrors, err := Parse(`package p;

	int f() { Mode m = Mode.ON; return 0; }

	enum Mode { ON, OFF, }`, "test.java")
	require.Nil(t, err)
	require.Empty(t, softErrors)

	require.Len(t, tree.Enums, 1)
	enum := tree.Enums[0]
	assert.Equal(t, "p.Mode", enum.QualifiedName)
	require.Len(t, enum.Entries, 2)

	declaration := tree.Methods[0].Body.Statements[0].(*uast.DeclarationStatement)
	assert.Equal(t, uast.NewReferenceType("p.Mode"), declaration.Variable.Type)
	assert.Same(t, enum.Entries[0], declaration.Initializer.(*uast.EnumEntryExpression).Entry)
}

func TestUnknownEnumEntry(t *testing.T) {
	_, _, err := Parse("enum Mode { ON, OFF } void f() { Mode m = Mode.ONN; }", "test.java")
	require.NotNil(t, err)
	assert.Equal(t, "Enum `Mode` has no entry named `ONN`", err.Message)
	assert.Equal(t, []string{"Did you mean `ON`?"}, err.Notes)
}

func TestDuplicateDeclarations(t *testing.T) {
	_, softErrors, err := Parse(`enum Mode { ON, ON }
	enum Mode { A }
	void f() {}
	void f() {}`, "test.java")
	require.Nil(t, err)

	messages := make([]string, 0, len(softErrors))
	for _, softError := range softErrors {
		messages = append(messages, softError.Message)
	}
	assert.Equal(t, []string{
		"Enum entry `ON` is already declared",
		"Enum `Mode` is already declared",
		"Method `f` is already declared",
	}, messages)
}

//
// Errors
//

func TestRecoverableSyntaxErrors(t *testing.T) {
	tests := []struct {
		source  string
		message string
	}{
		{source: "void f() { int x = 1 }", message: "Expected ';', found '}'"},
		{source: "void f(int a) { a + 1; }", message: "`a + 1` is not a statement"},
		{source: "void f(int a) { 1++; }", message: "Cannot assign to `1`: it is not a variable"},
		{source: "void f(boolean p) { if (p) int x = 1; }", message: "Declarations are not allowed here, use a block instead"},
	}

	for _, test := range tests {
		t.Run(test.source, func(t *testing.T) {
			_, softErrors, err := Parse(test.source, "test.java")
			require.Nil(t, err)
			require.NotEmpty(t, softErrors)
			assert.Equal(t, test.message, softErrors[0].Message)
		})
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		source  string
		message string
	}{
		{source: "void f() { int = 1; }", message: "Expected 'identifier', found '='"},
		{source: "void f(int a) { 1 = a; }", message: "Cannot assign to `1`: it is not a variable"},
		{source: "void f() { int x = ; }", message: "Expected an expression, found ';'"},
		{source: "void f() { g(1 2); }", message: "Expected either ',' or ')', found 'int literal'"},
		{source: "void f() {} package p;", message: "The package declaration must be the first item of a file"},
	}

	for _, test := range tests {
		t.Run(test.source, func(t *testing.T) {
			_, _, err := Parse(test.source, "test.java")
			require.NotNil(t, err)
			assert.Equal(t, test.message, err.Message)
		})
	}
}
