package statement

// SampleStatement is a small illustrative statement text layer used by tests
// and by the CLI demo command. It mirrors the tabular layout produced by
// common PDF text extractors: date, description, debit column, credit column,
// running balance.
const SampleStatement = `
Date        Description                    Debit      Credit     Balance
01/01/2024  SALARY CREDIT                  0.00      50000.00   50000.00
02/01/2024  ATM WITHDRAWAL                 2000.00   0.00        48000.00
03/01/2024  UPI PAYMENT - SWIGGY           350.00    0.00        47650.00
04/01/2024  EMI - HOME LOAN                15000.00  0.00        32650.00
05/01/2024  ELECTRICITY BILL               1200.00   0.00        31450.00
06/01/2024  AMAZON PURCHASE                2500.00   0.00        28950.00
07/01/2024  UBER RIDE                      180.00    0.00        28770.00
08/01/2024  NETFLIX SUBSCRIPTION           199.00    0.00        28571.00
09/01/2024  MEDICAL BILL                   800.00    0.00        27771.00
10/01/2024  SIP - MUTUAL FUND              5000.00   0.00        22771.00
`
