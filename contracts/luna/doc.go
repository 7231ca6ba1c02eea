/*
Package luna contains implementation of the Luna contract: the NEP-17
fungible token accepted by the Pixels contract for all purchases and
repaints. The whole supply is minted to the deploying owner; lunas then move
around with regular NEP-17 transfers. A transfer addressed to a deployed
contract pushes the attached data to the recipient's onNEP17Payment callback
within the same transaction, which is how pixel market instructions are
delivered.

# Contract notifications

Transfer notification as defined by the NEP-17 standard:

	Transfer
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package luna
