package testsupport

// SchottAGF is a small catalog in the vendor format: two glasses with
// dispersion, thermal, cost and transmission records.
const SchottAGF = `CC Schott test catalog
NM N-BK7 2 517642.251 1.5168 64.17 0 1 0
GC borosilicate crown
ED 7.1 8.3 2.51 -0.0009 0
CD 1.03961212E+000 6.00069867E-003 2.31792344E-001 2.00179144E-002 1.01046945E+000 1.03560653E+002 0.0E+000 0.0E+000 0.0E+000 0.0E+000
TD 1.86E-006 1.31E-008 -1.37E-011 4.34E-007 6.27E-010 2.0E+001 1.7E-001
OD 1.0 2 0 1 2.3 0 0
LD 3.0E-001 2.5E+000
IT 3.0E-001 5.0E-002 2.5E+001
IT 3.1E-001 2.5E-001 2.5E+001
NM F2 2 620364.360 1.62004 36.37 0 1 0
GC flint
ED 8.2 9.2 3.6 0.0 0
CD 1.34533359E+000 9.97743871E-003 2.09073176E-001 4.70450767E-002 9.37357162E-001 1.11886764E+002 0.0E+000 0.0E+000 0.0E+000 0.0E+000
OD 1.6 1 0 1 1 1
`

// OharaAGF redefines N-BK7 under another vendor with a different nd so
// merge order is observable.
const OharaAGF = `CC Ohara test catalog
NM N-BK7 2 517642.251 1.5170 64.20 0 1 0
CD 1.03961212E+000 6.00069867E-003 2.31792344E-001 2.00179144E-002 1.01046945E+000 1.03560653E+002
NM S-FPL51 2 497816.000 1.49700 81.54 0 1 0
CD 1.17080440E+000 6.13380610E-003 2.18270100E-001 2.05834230E-002 1.07818320E+000 2.35484020E+002
`
