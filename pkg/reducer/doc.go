/*
The reducer collapses twin nodes, nodes with identical closed neighborhoods, into a single representative.
Twins can never be told apart by any monitor placement, so collapsing them is a fast preflight step which
shrinks the number of variables and pairwise constraints handed to the solver without changing the optimum.
*/
package reducer
